package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

type upgradeFacilityCommand struct{}

func TestPrometheusMiddleware_LabelsOutcomeByErrorKind(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	rejected := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, shared.Errorf(shared.KindInsufficient, "insufficient LUMBER")
	}
	broken := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("database is locked")
	}
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "done", nil
	}

	// Act
	_, err := mw(context.Background(), &upgradeFacilityCommand{}, rejected)
	require.Error(t, err)
	_, err = mw(context.Background(), &upgradeFacilityCommand{}, broken)
	require.Error(t, err)
	resp, err := mw(context.Background(), &upgradeFacilityCommand{}, ok)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "done", resp)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("upgradeFacilityCommand", "insufficient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("upgradeFacilityCommand", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("upgradeFacilityCommand", "success")))
	assert.Zero(t, testutil.ToFloat64(collector.inFlight))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &upgradeFacilityCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "upgradeFacilityCommand", extractCommandName(&upgradeFacilityCommand{}))
	assert.Equal(t, "upgradeFacilityCommand", extractCommandName(upgradeFacilityCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestGameMetricsCollector_SplitsCreditsAndDebits(t *testing.T) {
	c := NewGameMetricsCollector()

	c.RecordResourceFlow("HARVEST", "PRODUCTION", "LUMBER", 4)
	c.RecordResourceFlow("HARVEST_FEE", "MAINTENANCE", "POWER", -2)
	c.RecordResourceFlow("HARVEST", "PRODUCTION", "BRICK", 0)
	c.RecordTokenHarvest(true, 1.5)
	c.RecordTokenHarvest(true, 0)

	assert.Equal(t, 4.0, testutil.ToFloat64(c.resourcesCredited.WithLabelValues("LUMBER", "HARVEST")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.resourcesDebited.WithLabelValues("POWER", "HARVEST_FEE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ledgerEntries.WithLabelValues("PRODUCTION")))
	assert.Equal(t, 1.5, testutil.ToFloat64(c.tokenHarvested.WithLabelValues("true")))
}

func TestRegister_IsNoOpUntilRegistryInitialized(t *testing.T) {
	previous := Registry
	t.Cleanup(func() { Registry = previous })

	Registry = nil
	assert.NoError(t, NewGameMetricsCollector().Register())
	assert.False(t, IsEnabled())

	InitRegistry()
	assert.True(t, IsEnabled())
	require.NoError(t, NewCommandMetricsCollector().Register())
	assert.Error(t, NewCommandMetricsCollector().Register(), "duplicate registration")
}
