package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "homestead"
	// Subsystem for game engine metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is the singleton game metrics collector
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder
)

// GameMetricsRecorder defines the interface for recording game economy metrics.
// Application code records through the package-level helpers so it never depends on
// whether metrics are enabled.
type GameMetricsRecorder interface {
	RecordResourceFlow(entryType string, category string, kind string, amount float64)
	RecordTokenHarvest(rare bool, amount float64)
	RecordHouseDied(rare bool)
	RecordEvent(eventType string)
	RecordSettlement(houses int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// registerAll adds collectors to Registry, stopping at the first failure. It does nothing
// while metrics are disabled.
func registerAll(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// RecordResourceFlow records one resource movement on an owner ledger. Negative amounts are
// debits.
func RecordResourceFlow(entryType string, category string, kind string, amount float64) {
	if globalGameCollector != nil {
		globalGameCollector.RecordResourceFlow(entryType, category, kind, amount)
	}
}

// RecordTokenHarvest records land token claimed from a house
func RecordTokenHarvest(rare bool, amount float64) {
	if globalGameCollector != nil {
		globalGameCollector.RecordTokenHarvest(rare, amount)
	}
}

// RecordHouseDied records a house reaching its lifetime harvest limit
func RecordHouseDied(rare bool) {
	if globalGameCollector != nil {
		globalGameCollector.RecordHouseDied(rare)
	}
}

// RecordEvent records a committed game event
func RecordEvent(eventType string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordEvent(eventType)
	}
}

// RecordSettlement records how many houses one owner-wide settlement touched
func RecordSettlement(houses int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordSettlement(houses)
	}
}
