package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"event_booking_go/middlewares"
	"event_booking_go/models"
	"event_booking_go/store"
	"event_booking_go/validations"
)

type BookingController struct {
	Bookings store.BookingStore
	Events   store.EventStore
	Timeout  time.Duration
}

func NewBookingController(bookings store.BookingStore, events store.EventStore, timeout time.Duration) *BookingController {
	return &BookingController{
		Bookings: bookings,
		Events:   events,
		Timeout:  timeout,
	}
}

// CreateBooking books an event for the caller.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req validations.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eventID, err := store.ParseID(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eventId"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), bc.Timeout)
	defer cancel()

	event, err := bc.Events.FindEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		} else {
			log.Error().Err(err).Msg("find event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		}
		return
	}

	now := time.Now()
	booking := models.Booking{
		EventID:   event.ID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := bc.Bookings.CreateBooking(ctx, &booking); err != nil {
		log.Error().Err(err).Msg("create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	booking.Event = &event

	c.JSON(http.StatusCreated, gin.H{"message": "booking created", "booking": booking})
}

// GetBookings lists the caller's bookings with their events.
func (bc *BookingController) GetBookings(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), bc.Timeout)
	defer cancel()

	bookings, err := bc.Bookings.ListUserBookings(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking deletes one of the caller's bookings and returns its event.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	bookingID, err := store.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), bc.Timeout)
	defer cancel()

	booking, err := bc.Bookings.FindBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			log.Error().Err(err).Msg("find booking")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		}
		return
	}
	if booking.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "booking belongs to another user"})
		return
	}

	if err := bc.Bookings.DeleteBooking(ctx, bookingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		log.Error().Err(err).Msg("delete booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "event": booking.Event})
}
