package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_http_requests_total",
		Help: "HTTP requests handled, by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	BookmarksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookmarks_total",
		Help: "Number of bookmarks in the database.",
	})

	StorageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_storage_errors_total",
		Help: "Requests that failed with a storage error, by operation.",
	}, []string{"op"})

	CacheResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_cache_results_total",
		Help: "Read-through cache lookups, by result (hit, miss, error).",
	}, []string{"result"})

	UnauthorizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarks_unauthorized_requests_total",
		Help: "Requests rejected by bearer token authentication.",
	})
)
