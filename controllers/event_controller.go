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
	"event_booking_go/utils"
	"event_booking_go/validations"
)

type EventController struct {
	Events  store.EventStore
	Users   store.UserStore
	Timeout time.Duration
}

func NewEventController(events store.EventStore, users store.UserStore, timeout time.Duration) *EventController {
	return &EventController{Events: events, Users: users, Timeout: timeout}
}

// GetAllEvents lists events by date, paginated with page and limit.
func (ec *EventController) GetAllEvents(c *gin.Context) {
	pagination := utils.GetPagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), ec.Timeout)
	defer cancel()

	events, total, err := ec.Events.ListEvents(ctx, store.Page{
		Skip:  int64(pagination.Skip),
		Limit: int64(pagination.Limit),
	})
	if err != nil {
		log.Error().Err(err).Msg("list events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       pagination.Page,
		"limit":      pagination.Limit,
		"total":      total,
		"totalPages": pagination.TotalPages(total),
		"events":     events,
	})
}

func (ec *EventController) GetEventByID(c *gin.Context) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ec.Timeout)
	defer cancel()

	event, err := ec.Events.FindEvent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		} else {
			log.Error().Err(err).Msg("find event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent stores a new event owned by the caller.
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req validations.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validations.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ec.Timeout)
	defer cancel()

	now := time.Now()
	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Date:        req.Date,
		CreatorID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ec.Events.CreateEvent(ctx, &event); err != nil {
		log.Error().Err(err).Msg("create event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert data"})
		return
	}
	if err := ec.Users.AddCreatedEvent(ctx, userID, event.ID); err != nil {
		log.Error().Err(err).Str("event", event.ID.Hex()).Msg("link event to creator")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to link event to creator"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "event created",
		"event":   event,
	})
}
