package router

import (
	"github.com/gin-gonic/gin"

	"event_booking_go/controllers"
	"event_booking_go/middlewares"
)

func ChartRoutes(r *gin.Engine, d Deps) {
	chartController := controllers.NewChartController(d.Store, d.Buckets, d.Timeout)

	r.GET("/bookings/chart", middlewares.RequireAuth(), chartController.GetBookingsChart)
	r.POST("/charts/bookings", chartController.PostChart)
}
