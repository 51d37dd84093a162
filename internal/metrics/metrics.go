package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livedocs_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "livedocs_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	DocumentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livedocs_documents_created_total",
			Help: "Total documents created",
		},
	)

	TitleUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livedocs_title_updates_total",
			Help: "Total document title updates",
		},
	)

	AccessGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livedocs_access_grants_total",
			Help: "Total collaborator access grants and updates",
		},
		[]string{"role"}, // "editor" or "viewer"
	)

	CollaboratorRemovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livedocs_collaborator_removals_total",
			Help: "Total collaborators removed",
		},
	)

	ShareNotifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livedocs_share_notifications_total",
			Help: "Total share notifications delivered",
		},
	)

	// Infrastructure metrics
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "livedocs_backend_request_duration_seconds",
			Help:    "Collaboration backend request latency",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livedocs_cache_hits_total",
			Help: "View cache hits",
		},
		[]string{"view"}, // "document" or "listing"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livedocs_cache_misses_total",
			Help: "View cache misses",
		},
		[]string{"view"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livedocs_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
