package validations

type CreateBookingRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// ChartQuery selects the output of the chart endpoints.
type ChartQuery struct {
	Format string `form:"format,default=svg" binding:"omitempty,oneof=svg text json"`
}
