package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "typing_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Illustration pipeline metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_illustration_resolutions_total",
			Help: "Terminal illustration resolution outcomes",
		},
		[]string{"status"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_provider_requests_total",
			Help: "Image provider search attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Media asset cache metrics
	CacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_media_cache_events_total",
			Help: "Media asset cache events",
		},
		[]string{"event"},
	)
)
