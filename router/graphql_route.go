package router

import (
	"github.com/gin-gonic/gin"

	"event_booking_go/controllers"
)

func GraphQLRoutes(r *gin.Engine, d Deps) {
	graphqlController := controllers.NewGraphQLController(d.Schema)

	r.POST("/graphql", graphqlController.Post)
	r.GET("/graphql", graphqlController.Get)
}
