package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"event_booking_go/analytics"
	"event_booking_go/chart"
	"event_booking_go/middlewares"
	"event_booking_go/store"
	"event_booking_go/validations"
)

type ChartController struct {
	Bookings store.BookingStore
	Buckets  analytics.BucketSet
	Chart    chart.Chart
	Timeout  time.Duration
}

func NewChartController(bookings store.BookingStore, buckets analytics.BucketSet, timeout time.Duration) *ChartController {
	return &ChartController{
		Bookings: bookings,
		Buckets:  buckets,
		Chart:    chart.Default(),
		Timeout:  timeout,
	}
}

// chartRequest is a client-side list of bookings. Buckets override the
// configured ones when present.
type chartRequest struct {
	Bookings []analytics.Record      `json:"bookings" binding:"required"`
	Buckets  []analytics.PriceBucket `json:"buckets"`
}

// GetBookingsChart charts the caller's own bookings.
func (cc *ChartController) GetBookingsChart(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var q validations.ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.Timeout)
	defer cancel()

	bookings, err := cc.Bookings.ListUserBookings(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}

	cc.render(c, q.Format, analytics.Bucketize(bookings, cc.Buckets))
}

// PostChart charts bookings sent in the request body.
func (cc *ChartController) PostChart(c *gin.Context) {
	var q validations.ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buckets := cc.Buckets
	if len(req.Buckets) > 0 {
		buckets = analytics.BucketSet(req.Buckets)
		if err := buckets.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	cc.render(c, q.Format, analytics.Bucketize(req.Bookings, buckets))
}

func (cc *ChartController) render(c *gin.Context, format string, data analytics.ChartData) {
	switch format {
	case "json":
		c.JSON(http.StatusOK, gin.H{
			"labels":   data.Labels,
			"datasets": data.Datasets,
			"total":    data.Total(),
		})
	case "text":
		txt := chart.NewText(40)
		cc.Chart.Draw(data, txt)
		c.String(http.StatusOK, txt.String())
	default:
		s := chart.NewSVG()
		cc.Chart.Draw(data, s)
		c.Data(http.StatusOK, "image/svg+xml", s.Bytes())
	}
}
