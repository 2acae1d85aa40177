package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func newRunner(t *testing.T) *game.Runner {
	t.Helper()
	db := helpers.NewTestDB(t)
	return game.NewRunner(persistence.NewGormUnitOfWork(db), settings.Default(), shared.NewMockClock(helpers.GameStart), shared.MustNewAddress(helpers.AdminAddress))
}

func TestCreateConfiguredMediator_InstallsMiddlewaresAndHandlers(t *testing.T) {
	// Arrange
	var seen []mediator.Request
	spy := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		seen = append(seen, request)
		return next(ctx, request)
	}
	m, err := setup.NewHandlerRegistry(newRunner(t), spy).CreateConfiguredMediator()
	require.NoError(t, err)

	// Act
	resp, err := m.Send(context.Background(), &gameQueries.GetResourcesQuery{Owner: "alice"})

	// Assert
	require.NoError(t, err)
	assert.IsType(t, &gameQueries.GetResourcesResponse{}, resp)
	assert.Len(t, seen, 1)
}

func TestRegisterHouseHandlers_RejectsSecondRegistration(t *testing.T) {
	registry := setup.NewHandlerRegistry(newRunner(t))
	m := mediator.NewMediator()
	require.NoError(t, registry.RegisterHouseHandlers(m))

	err := registry.RegisterHouseHandlers(m)

	assert.ErrorContains(t, err, "failed to register house handlers")
}
