package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"event_booking_go/analytics"
	"event_booking_go/middlewares"
	"event_booking_go/store"
	"event_booking_go/utils"
)

// Deps is everything the route groups need.
type Deps struct {
	Store      store.Store
	Tokens     *utils.TokenIssuer
	Schema     graphql.Schema
	Buckets    analytics.BucketSet
	Timeout    time.Duration
	CORSOrigin string
}

// Setup builds the engine with the shared middleware chain and every route.
func Setup(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.Logger(),
		gin.Recovery(),
		middlewares.CORS(d.CORSOrigin),
		middlewares.IsAuth(d.Tokens),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	UserRoutes(r, d)
	EventRoutes(r, d)
	BookRoutes(r, d)
	ChartRoutes(r, d)
	GraphQLRoutes(r, d)

	return r
}
