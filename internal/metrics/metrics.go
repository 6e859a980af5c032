// Package metrics provides Prometheus metrics collection for the storefront service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CartMutationsTotal tracks cart mutations by operation and outcome status.
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"operation", "status"},
	)

	// QuoteComputationsTotal tracks pricing quote computations.
	QuoteComputationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_computations_total",
			Help: "Total number of pricing quote computations",
		},
	)

	// ShippingLookupsTotal tracks shipping rate lookups by result
	// (ok, fallback, cached, free, invalid_pincode).
	ShippingLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipping_lookups_total",
			Help: "Total number of shipping rate lookups",
		},
		[]string{"result"},
	)

	// ShippingLookupDuration tracks external rate lookup duration.
	ShippingLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shipping_lookup_duration_seconds",
			Help:    "External shipping rate lookup duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	// OfferTransitionsTotal tracks offer state transitions by target kind.
	OfferTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_transitions_total",
			Help: "Total number of promotional offer transitions",
		},
		[]string{"kind"},
	)

	// CheckoutsTotal tracks checkouts by outcome
	// (completed, completed_with_warnings, payment_failed).
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"outcome"},
	)

	// CheckoutItemRetriesTotal counts retried order item writes.
	CheckoutItemRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_item_retries_total",
			Help: "Total number of retried order item writes",
		},
	)

	// RateCacheOperationsTotal tracks shipping rate cache operations.
	RateCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_cache_operations_total",
			Help: "Total number of shipping rate cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCartMutation records a cart mutation outcome.
func RecordCartMutation(operation, status string) {
	CartMutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordShippingLookup records a rate lookup outcome with its duration.
func RecordShippingLookup(duration time.Duration, result string) {
	ShippingLookupDuration.Observe(duration.Seconds())
	ShippingLookupsTotal.WithLabelValues(result).Inc()
}

// RecordRateCacheOperation records a shipping rate cache operation.
func RecordRateCacheOperation(operation, result string) {
	RateCacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
