package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/stake/commands"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func TestStake_MovesAssetTokenIntoThePosition(t *testing.T) {
	// Arrange
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	require.NoError(t, g.GrantTokens("alice", 0, 100))

	// Act
	resp, err := g.Send(&commands.StakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(60)})

	// Assert
	require.NoError(t, err)
	staked := resp.(*commands.StakeResponse)
	assert.True(t, decimal.NewFromInt(60).Equal(staked.Staked))
	assert.True(t, decimal.NewFromInt(40).Equal(staked.Wallet))

	details, err := g.Send(&gameQueries.GetHouseDetailsQuery{HouseID: id})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(details.(*gameQueries.GetHouseDetailsResponse).House.Staked))
}

func TestStake_Rejections(t *testing.T) {
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	require.NoError(t, g.GrantTokens("alice", 0, 10))

	_, err = g.Send(&commands.StakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(11)})
	assert.True(t, shared.IsKind(err, shared.KindInsufficient), "got %v", err)

	_, err = g.Send(&commands.StakeCommand{Actor: "bob", HouseID: id, Amount: decimal.NewFromInt(1)})
	assert.True(t, shared.IsKind(err, shared.KindAuthorization), "got %v", err)

	_, err = g.Send(&commands.UnstakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(1)})
	assert.True(t, shared.IsKind(err, shared.KindBounds), "got %v", err)

	_, err = g.Send(&commands.StakeCommand{Actor: "alice", HouseID: id, Amount: decimal.Zero})
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument), "got %v", err)
}

func TestStake_TokenRewardAccruesOnlyWhileStaked(t *testing.T) {
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	require.NoError(t, g.GrantTokens("alice", 0, 100))

	g.Clock.AdvanceDays(1)
	pending := func() decimal.Decimal {
		resp, err := g.Send(&gameQueries.GetHouseDetailsQuery{HouseID: id})
		require.NoError(t, err)
		return resp.(*gameQueries.GetHouseDetailsResponse).House.PendingToken
	}
	assert.True(t, pending().IsZero())

	_, err = g.Send(&commands.StakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	g.Clock.AdvanceDays(1)
	assert.True(t, pending().IsPositive())
}
