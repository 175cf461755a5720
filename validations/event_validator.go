package validations

import "time"

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required" validate:"required"`
	Description string    `json:"description" binding:"required" validate:"required"`
	Price       *float64  `json:"price" binding:"required,gte=0" validate:"required,gte=0"`
	Date        time.Time `json:"date" binding:"required" validate:"required"`
}
