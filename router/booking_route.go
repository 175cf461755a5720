package router

import (
	"github.com/gin-gonic/gin"

	"event_booking_go/controllers"
	"event_booking_go/middlewares"
)

func BookRoutes(r *gin.Engine, d Deps) {
	bookingController := controllers.NewBookingController(d.Store, d.Store, d.Timeout)

	bookings := r.Group("/bookings", middlewares.RequireAuth())
	bookings.POST("", bookingController.CreateBooking)
	bookings.GET("", bookingController.GetBookings)
	bookings.DELETE("/:id", bookingController.CancelBooking)
}
