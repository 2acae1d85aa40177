package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/house/commands"
	stakeCommands "github.com/andrescamacho/homestead-go/internal/application/stake/commands"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func newGame(t *testing.T) *helpers.TestGame {
	t.Helper()
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	return g
}

func TestMintHouse_AssignsSequentialIDs(t *testing.T) {
	g := newGame(t)

	first, err := g.Send(&commands.MintHouseCommand{Actor: helpers.AdminAddress, Owner: "alice", Name: "Cabin"})
	require.NoError(t, err)
	second, err := g.Send(&commands.MintHouseCommand{Actor: helpers.AdminAddress, Owner: "bob", Rare: true})
	require.NoError(t, err)

	assert.Equal(t, int64(0), first.(*commands.MintHouseResponse).HouseID)
	assert.Equal(t, int64(1), second.(*commands.MintHouseResponse).HouseID)
	assert.True(t, second.(*commands.MintHouseResponse).Rare)
	minted := g.Events.Last(event.HouseMinted)
	require.NotNil(t, minted)
	assert.Equal(t, "bob", minted.Data["owner"])

	resp, err := g.Send(&gameQueries.GetHouseDetailsQuery{HouseID: 0})
	require.NoError(t, err)
	assert.Equal(t, "Cabin", resp.(*gameQueries.GetHouseDetailsResponse).House.Name)
}

func TestMintHouse_AdminOnly(t *testing.T) {
	g := newGame(t)

	_, err := g.Send(&commands.MintHouseCommand{Actor: "alice", Owner: "alice"})

	assert.True(t, shared.IsKind(err, shared.KindAuthorization), "got %v", err)
}

func TestMintHouse_RareSupplyIsCapped(t *testing.T) {
	// Arrange
	g := newGame(t)
	for i := 0; i < g.Table.Minting.RareLimit; i++ {
		_, err := g.MintHouse("alice", true)
		require.NoError(t, err)
	}

	// Act
	_, err := g.MintHouse("alice", true)

	// Assert
	assert.True(t, shared.IsKind(err, shared.KindBounds), "got %v", err)
	_, err = g.MintHouse("alice", false)
	assert.NoError(t, err, "standard houses are not capped")
}

func TestSetHouseName_OwnerOnly(t *testing.T) {
	g := newGame(t)
	id, err := g.MintHouse("alice", false)
	require.NoError(t, err)

	_, err = g.Send(&commands.SetHouseNameCommand{Actor: "bob", HouseID: id, Name: "Mine"})
	assert.True(t, shared.IsKind(err, shared.KindAuthorization))

	resp, err := g.Send(&commands.SetHouseNameCommand{Actor: "alice", HouseID: id, Name: "Lakeside"})
	require.NoError(t, err)
	assert.Equal(t, "Lakeside", resp.(*commands.HouseResponse).Name)
	assert.NotNil(t, g.Events.Last(event.HouseRenamed))
}

func TestTransferHouse_RequiresUnstakedHouse(t *testing.T) {
	// Arrange
	g := newGame(t)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	require.NoError(t, g.GrantTokens("alice", 0, 50))
	_, err = g.Send(&stakeCommands.StakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	// Act
	_, err = g.Send(&commands.TransferHouseCommand{Actor: "alice", HouseID: id, To: "bob"})

	// Assert
	assert.True(t, shared.IsKind(err, shared.KindStateConflict), "got %v", err)

	_, err = g.Send(&stakeCommands.UnstakeCommand{Actor: "alice", HouseID: id, Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)
	resp, err := g.Send(&commands.TransferHouseCommand{Actor: "alice", HouseID: id, To: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.(*commands.HouseResponse).Owner)
}

func TestTransferHouse_ToCurrentOwnerIsRejected(t *testing.T) {
	g := newGame(t)
	id, err := g.MintHouse("alice", false)
	require.NoError(t, err)

	_, err = g.Send(&commands.TransferHouseCommand{Actor: "alice", HouseID: id, To: "alice"})

	assert.True(t, shared.IsKind(err, shared.KindStateConflict), "got %v", err)
}
