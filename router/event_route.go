package router

import (
	"github.com/gin-gonic/gin"

	"event_booking_go/controllers"
	"event_booking_go/middlewares"
)

func EventRoutes(r *gin.Engine, d Deps) {
	eventController := controllers.NewEventController(d.Store, d.Store, d.Timeout)

	r.GET("/events", eventController.GetAllEvents)
	r.GET("/events/:id", eventController.GetEventByID)
	r.POST("/events", middlewares.RequireAuth(), eventController.CreateEvent)
}
