package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"` // bcrypt hash
	CreatedEvents []primitive.ObjectID `bson:"createdEvents" json:"createdEvents"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// AuthData is what a successful login hands back.
type AuthData struct {
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	TokenExpiration int    `json:"tokenExpiration"` // hours
}
