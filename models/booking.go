package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"event" json:"eventId"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// populated on read, never stored
	Event *Event `bson:"eventDoc,omitempty" json:"event,omitempty"`
}

// EventPrice reports the booked event's price. Bookings whose event
// could not be loaded have no price.
func (b Booking) EventPrice() (float64, bool) {
	if b.Event == nil {
		return 0, false
	}
	return b.Event.Price, true
}
