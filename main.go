package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"event_booking_go/config"
	"event_booking_go/gql"
	"event_booking_go/router"
	"event_booking_go/store"
	"event_booking_go/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	utils.SetupLogger(cfg.LogLevel, cfg.Development())
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	var db store.Store
	if cfg.MongoURI != "" {
		client, err := config.ConnectDB(cfg.MongoURI)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to MongoDB")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("disconnect mongo")
			}
		}()

		mongoStore := store.NewMongo(client, cfg.Database)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		err = mongoStore.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating indexes")
		}
		db = mongoStore
	} else {
		log.Warn().Msg("MONGO_URI not set, using in-memory store")
		db = store.NewMemory()
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	buckets := cfg.PriceBuckets

	schema, err := gql.NewSchema(&gql.Resolver{Store: db, Tokens: tokens, Buckets: buckets})
	if err != nil {
		log.Fatal().Err(err).Msg("Error building GraphQL schema")
	}

	r := router.Setup(router.Deps{
		Store:      db,
		Tokens:     tokens,
		Schema:     schema,
		Buckets:    buckets,
		Timeout:    cfg.RequestTimeout,
		CORSOrigin: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("buckets", buckets.String()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
