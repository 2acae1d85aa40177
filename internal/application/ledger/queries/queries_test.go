package queries_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

const alice = "alice"

// playDay funds alice, upgrades a facility, waits a day and harvests brick
func playDay(t *testing.T) *helpers.TestGame {
	t.Helper()
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	id, err := g.ActiveHouse(alice, false)
	require.NoError(t, err)
	require.NoError(t, g.Fund(alice, 10, 5, 0, 0, 0))
	_, err = g.Send(&gameCommands.UpgradeFacilityCommand{Actor: alice, HouseID: id, Facility: "LUMBER_MILL"})
	require.NoError(t, err)
	g.Clock.AdvanceDays(1)
	_, err = g.Send(&gameCommands.HarvestCommand{Actor: alice, HouseID: id, Selector: resource.Selector{false, false, true}})
	require.NoError(t, err)
	return g
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestGetEntries_RecordsEveryBalanceChange(t *testing.T) {
	// Arrange
	g := playDay(t)

	// Act
	resp, err := g.Send(&queries.GetEntriesQuery{Owner: alice, OrderBy: "timestamp ASC"})

	// Assert
	require.NoError(t, err)
	entries := resp.(*queries.GetEntriesResponse)
	assert.Equal(t, 5, entries.Total)
	require.Len(t, entries.Entries, 5)
	assert.Equal(t, "ADMIN_CREDIT", entries.Entries[0].Type)
	assert.Equal(t, "UPGRADE_FACILITY", entries.Entries[1].Type)
	last := entries.Entries[len(entries.Entries)-1]
	assertAmount(t, "6", last.BalanceAfter.Get(resource.Power))
	assertAmount(t, "3", last.BalanceAfter.Get(resource.Brick))
	for i := 1; i < len(entries.Entries); i++ {
		assert.True(t, entries.Entries[i-1].BalanceAfter.Equal(entries.Entries[i].BalanceBefore), "entries chain balance to balance")
	}
}

func TestGetEntries_FiltersAndPages(t *testing.T) {
	g := playDay(t)
	production := "PRODUCTION"

	resp, err := g.Send(&queries.GetEntriesQuery{Owner: alice, Category: &production})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.(*queries.GetEntriesResponse).Total)

	resp, err = g.Send(&queries.GetEntriesQuery{Owner: alice, Limit: 2, Offset: 1})
	require.NoError(t, err)
	page := resp.(*queries.GetEntriesResponse)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Entries, 2)

	bogus := "NOT_A_TYPE"
	_, err = g.Send(&queries.GetEntriesQuery{Owner: alice, EntryType: &bogus})
	assert.Error(t, err)
}

func TestGetResourceFlow_GroupsByCategory(t *testing.T) {
	// Arrange
	g := playDay(t)

	// Act
	resp, err := g.Send(&queries.GetResourceFlowQuery{Owner: alice})

	// Assert
	require.NoError(t, err)
	flow := resp.(*queries.GetResourceFlowResponse)
	assert.Equal(t, "beginning to now", flow.Period)
	byName := make(map[string]*queries.CategoryFlow)
	for _, c := range flow.Categories {
		byName[c.Category] = c
	}
	require.Len(t, byName, 4)
	assert.Equal(t, 2, byName["PRODUCTION"].Entries)
	assertAmount(t, "8", byName["PRODUCTION"].Inflow.Get(resource.Power))
	assertAmount(t, "3", byName["PRODUCTION"].Inflow.Get(resource.Brick))
	assertAmount(t, "10", byName["INVESTMENT"].Outflow.Get(resource.Power))
	assertAmount(t, "-2", byName["MAINTENANCE"].Net.Get(resource.Power))
	assertAmount(t, "6", flow.Net.Get(resource.Power))
	assertAmount(t, "0", flow.Net.Get(resource.Lumber))
}
