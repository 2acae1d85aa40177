package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// GameMetricsCollector handles the economy metrics: resources flowing through owner ledgers,
// land token harvested, houses reaching their harvest limit and committed events.
type GameMetricsCollector struct {
	resourcesCredited *prometheus.CounterVec
	resourcesDebited  *prometheus.CounterVec
	ledgerEntries     *prometheus.CounterVec
	tokenHarvested    *prometheus.CounterVec
	housesDied        *prometheus.CounterVec
	eventsTotal       *prometheus.CounterVec
	settledHouses     prometheus.Histogram
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		resourcesCredited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resources_credited_total",
				Help:      "Resource units credited to owner ledgers by kind and entry type",
			},
			[]string{"kind", "entry_type"},
		),

		resourcesDebited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resources_debited_total",
				Help:      "Resource units debited from owner ledgers by kind and entry type",
			},
			[]string{"kind", "entry_type"},
		),

		ledgerEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ledger_movements_total",
				Help:      "Number of per-kind ledger movements by category",
			},
			[]string{"category"},
		),

		tokenHarvested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "token_harvested_total",
				Help:      "Land token harvested from houses",
			},
			[]string{"rare"},
		),

		housesDied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "houses_died_total",
				Help:      "Houses that reached their lifetime harvest limit",
			},
			[]string{"rare"},
		),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Committed game events by type",
			},
			[]string{"type"},
		),

		settledHouses: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "settled_houses",
				Help:      "Houses settled per operation",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	return registerAll(
		c.resourcesCredited,
		c.resourcesDebited,
		c.ledgerEntries,
		c.tokenHarvested,
		c.housesDied,
		c.eventsTotal,
		c.settledHouses,
	)
}

// RecordResourceFlow records one resource movement
func (c *GameMetricsCollector) RecordResourceFlow(entryType string, category string, kind string, amount float64) {
	if amount == 0 {
		return
	}
	c.ledgerEntries.WithLabelValues(category).Inc()
	if amount > 0 {
		c.resourcesCredited.WithLabelValues(kind, entryType).Add(amount)
		return
	}
	c.resourcesDebited.WithLabelValues(kind, entryType).Add(-amount)
}

// RecordTokenHarvest records land token claimed from a house
func (c *GameMetricsCollector) RecordTokenHarvest(rare bool, amount float64) {
	if amount <= 0 {
		return
	}
	c.tokenHarvested.WithLabelValues(strconv.FormatBool(rare)).Add(amount)
}

// RecordHouseDied records a house reaching its harvest limit
func (c *GameMetricsCollector) RecordHouseDied(rare bool) {
	c.housesDied.WithLabelValues(strconv.FormatBool(rare)).Inc()
}

// RecordEvent records a committed event
func (c *GameMetricsCollector) RecordEvent(eventType string) {
	c.eventsTotal.WithLabelValues(eventType).Inc()
}

// RecordSettlement records the size of one owner-wide settlement
func (c *GameMetricsCollector) RecordSettlement(houses int) {
	c.settledHouses.Observe(float64(houses))
}
