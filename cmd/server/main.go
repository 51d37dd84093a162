package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TshiamoTodd/live-docs/internal/api"
	"github.com/TshiamoTodd/live-docs/internal/cache"
	"github.com/TshiamoTodd/live-docs/internal/config"
	"github.com/TshiamoTodd/live-docs/internal/docs"
	"github.com/TshiamoTodd/live-docs/internal/liveblocks"
	"github.com/TshiamoTodd/live-docs/internal/notify"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Select the collaboration backend. Without a secret key the in-memory
	// backend serves local development; state is lost on restart.
	var backend liveblocks.Backend
	if cfg.LiveblocksSecretKey != "" {
		backend = liveblocks.NewClient(cfg.LiveblocksAPIURL, cfg.LiveblocksSecretKey)
		logger.Info().Str("api_url", cfg.LiveblocksAPIURL).Msg("using Liveblocks backend")
	} else {
		backend = liveblocks.NewMemoryBackend()
		logger.Warn().Msg("LIVEBLOCKS_SECRET_KEY not set, using in-memory backend")
	}

	// Initialize the Redis view cache
	var views *cache.ViewCache
	if cfg.RedisURL != "" {
		var err error
		views, err = cache.NewFromURL(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer views.Close()
		logger.Info().Msg("connected to Redis")
	} else {
		logger.Warn().Msg("REDIS_URL not set, view cache and notifications disabled")
	}

	inbox := notify.NewInbox(views.Client())

	var policy docs.AccessPolicy
	switch cfg.DefaultAccessPolicy {
	case "open":
		policy = docs.PolicyOpen
	default:
		policy = docs.PolicyRestricted
	}

	svc := docs.NewService(backend, views, inbox, logger, docs.Options{
		EnforceReadAccess:   cfg.EnforceReadAccess,
		DefaultAccessPolicy: policy,
	})

	// Create router
	router := api.NewRouter(logger, svc, views, inbox, api.RouterOptions{
		RateLimitWhitelist: cfg.RateLimitWhitelist,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting LiveDocs server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
