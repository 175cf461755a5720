package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"event_booking_go/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalidID = errors.New("invalid id")
)

// Page selects a window of a listing. Limit 0 means no limit.
type Page struct {
	Skip  int64
	Limit int64
}

type EventStore interface {
	ListEvents(ctx context.Context, page Page) ([]models.Event, int64, error)
	FindEvent(ctx context.Context, id primitive.ObjectID) (models.Event, error)
	FindEvents(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
}

type UserStore interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	AddCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
}

// BookingStore returns bookings with their Event populated when the
// event still exists.
type BookingStore interface {
	ListUserBookings(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	FindBooking(ctx context.Context, id primitive.ObjectID) (models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id primitive.ObjectID) error
}

type Store interface {
	EventStore
	UserStore
	BookingStore
}

// ParseID turns a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
