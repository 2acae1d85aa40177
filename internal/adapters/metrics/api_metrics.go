package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector handles HTTP API request metrics
type APIMetricsCollector struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRateLimited     *prometheus.CounterVec
	observersConnected prometheus.Gauge
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		// Total API requests by method, route, and status code
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests by method, route, and status code",
			},
			[]string{"method", "route", "status_code"},
		),

		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"method", "route"},
		),

		// Requests refused by the per-actor limiter
		apiRateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "rate_limited_total",
				Help:      "Total number of API requests rejected by the per-actor rate limiter",
			},
			[]string{"route"},
		),

		observersConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "observers_connected",
				Help:      "Number of websocket observers currently subscribed to the event feed",
			},
		),
	}
}

// Register registers all API metrics with the Prometheus registry
func (c *APIMetricsCollector) Register() error {
	return registerAll(
		c.apiRequestsTotal,
		c.apiRequestDuration,
		c.apiRateLimited,
		c.observersConnected,
	)
}

// RecordAPIRequest records an API request completion
func (c *APIMetricsCollector) RecordAPIRequest(
	method string,
	route string,
	statusCode int,
	duration float64,
) {
	c.apiRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.apiRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordRateLimited records a request refused by the rate limiter
func (c *APIMetricsCollector) RecordRateLimited(route string) {
	c.apiRateLimited.WithLabelValues(route).Inc()
}

// SetObservers records the current number of websocket observers
func (c *APIMetricsCollector) SetObservers(n int) {
	c.observersConnected.Set(float64(n))
}
