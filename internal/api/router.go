// Package api wires the HTTP surface: router, middleware stack and routes.
package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/TshiamoTodd/live-docs/internal/api/middleware"
	"github.com/TshiamoTodd/live-docs/internal/cache"
	"github.com/TshiamoTodd/live-docs/internal/docs"
	"github.com/TshiamoTodd/live-docs/internal/handlers"
	"github.com/TshiamoTodd/live-docs/internal/notify"
)

// RouterOptions carries optional router configuration.
type RouterOptions struct {
	// RateLimitWhitelist holds IPs or CIDRs exempt from rate limiting.
	RateLimitWhitelist []string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, svc *docs.Service, views *cache.ViewCache, inbox *notify.Inbox, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(16 * 1024)) // 16KB max body
	r.Use(middleware.RequireJSON)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting rides on the shared Redis connection when present.
	if client := views.Client(); client != nil {
		limiter := middleware.NewRateLimiter(client, logger, opts.RateLimitWhitelist)
		r.Use(limiter.Middleware)
	}

	// CORS - the web frontend may be served from any origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-LiveDocs-User-Id", "X-LiveDocs-User-Email"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(svc, views, inbox)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes (no identity required)
	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Document routes (require caller identity)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Post("/documents", h.CreateDocument)
		r.Get("/documents", h.ListDocuments)
		r.Get("/documents/{id}", h.GetDocument)
		r.Patch("/documents/{id}", h.UpdateTitle)
		r.Get("/documents/{id}/collaborators", h.SearchCollaborators)
		r.Post("/documents/{id}/collaborators", h.ShareDocument)
		r.Delete("/documents/{id}/collaborators/{email}", h.RemoveCollaborator)

		r.Get("/notifications", h.ListNotifications)
	})

	return r
}
