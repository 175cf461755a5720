package router

import (
	"github.com/gin-gonic/gin"

	"event_booking_go/controllers"
)

func UserRoutes(r *gin.Engine, d Deps) {
	userController := controllers.NewUserController(d.Store, d.Tokens, d.Timeout)

	r.POST("/register", userController.Register)
	r.POST("/login", userController.Login)
}
