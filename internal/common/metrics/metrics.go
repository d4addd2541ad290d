// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route"},
	)

	FilterComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_filter_compute_duration_seconds",
			Help: "Duration of facet computation per category listing",
		},
		[]string{"category"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_lookups_total",
			Help: "Catalog cache lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	AlertsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_stock_alerts_dispatched_total",
			Help: "Back-in-stock alerts dispatched by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
)
