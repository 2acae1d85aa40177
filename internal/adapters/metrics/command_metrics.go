package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector measures every request dispatched through the mediator
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	inFlight prometheus.Gauge
}

// NewCommandMetricsCollector creates the collector. Operations settle a handful of houses in
// one transaction, so the duration buckets stay under a second.
func NewCommandMetricsCollector() *CommandMetricsCollector {
	labels := []string{"command", "status"}
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "command_duration_seconds",
			Help:      "Time spent dispatching a command or query, by outcome",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, labels),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "Commands and queries dispatched, by outcome (success, error, or the rejection kind)",
		}, labels),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_in_flight",
			Help:      "Commands and queries waiting on or holding the game lock",
		}),
	}
}

// Register adds the collector to Registry; a no-op while metrics are disabled
func (c *CommandMetricsCollector) Register() error {
	return registerAll(c.duration, c.total, c.inFlight)
}

// RecordCommandExecution records one finished dispatch
func (c *CommandMetricsCollector) RecordCommandExecution(command string, seconds float64, status string) {
	c.duration.WithLabelValues(command, status).Observe(seconds)
	c.total.WithLabelValues(command, status).Inc()
}

func (c *CommandMetricsCollector) started()  { c.inFlight.Inc() }
func (c *CommandMetricsCollector) finished() { c.inFlight.Dec() }
