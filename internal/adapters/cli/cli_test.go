package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

// runCLI executes the root command against d and returns everything written
func runCLI(t *testing.T, d Dispatcher, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOMESTEAD_SERVER", "")
	color.Disable()

	previous := openDispatcher
	openDispatcher = func(ctx context.Context) (Dispatcher, context.Context, func() error, error) {
		return d, ctx, func() error { return nil }, nil
	}
	t.Cleanup(func() { openDispatcher = previous })

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func newGame(t *testing.T) *helpers.TestGame {
	t.Helper()
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	return g
}

func TestHarvest_BuildsSelectorFromSlots(t *testing.T) {
	m := helpers.NewMockMediator()
	m.Respond(&commands.HarvestCommand{}, &commands.HarvestResponse{HouseID: 3})

	_, err := runCLI(t, m, "harvest", "3", "--slots", "token, steel", "--actor", "alice")
	require.NoError(t, err)

	cmd, ok := m.LastRequest().(*commands.HarvestCommand)
	require.True(t, ok)
	assert.Equal(t, "alice", cmd.Actor)
	assert.Equal(t, int64(3), cmd.HouseID)
	assert.Equal(t, resource.Selector{true, false, false, false, true}, cmd.Selector)
}

func TestHarvest_PreviewSendsCostQuery(t *testing.T) {
	m := helpers.NewMockMediator()
	m.Respond(&queries.GetHarvestCostQuery{}, &queries.CostResponse{HouseID: 3, Cost: resource.Units(4, 0, 0, 0, 0)})

	out, err := runCLI(t, m, "harvest", "3", "--preview")
	require.NoError(t, err)

	_, ok := m.LastRequest().(*queries.GetHarvestCostQuery)
	assert.True(t, ok)
	assert.Contains(t, out, "4 POWER")
}

func TestHarvest_RejectsPowerSlot(t *testing.T) {
	m := helpers.NewMockMediator()

	_, err := runCLI(t, m, "harvest", "3", "--slots", "power", "--actor", "alice")
	require.Error(t, err)
	assert.Empty(t, m.Requests())
}

func TestCommand_RequiresActor(t *testing.T) {
	t.Setenv("HS_PROFILE", filepath.Join(t.TempDir(), "profile.yaml"))
	m := helpers.NewMockMediator()

	_, err := runCLI(t, m, "house", "activate", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no actor specified")
}

func TestHouseList_AgainstGame(t *testing.T) {
	g := newGame(t)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)

	out, err := runCLI(t, g.Mediator, "house", "list", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Houses of alice (1)")
	assert.Contains(t, out, "producing")
	assert.Contains(t, out, itoa(id)+"  ")
}

func TestResources_JSONOutput(t *testing.T) {
	g := newGame(t)
	require.NoError(t, g.Fund("alice", 0, 25, 0, 0, 0))

	out, err := runCLI(t, g.Mediator, "resources", "alice", "--json")
	require.NoError(t, err)

	var resp queries.GetResourcesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "alice", resp.Owner)
	assert.Equal(t, "25", resp.Balances.Get(resource.Lumber).String())
}

func TestBuild_RejectionCarriesKind(t *testing.T) {
	g := newGame(t)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)

	_, err = runCLI(t, g.Mediator, "build", "addon", "buy", itoa(id), "2", "--actor", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected ("+string(shared.KindDependency)+")")
}

func TestAdminMint_ThenShow(t *testing.T) {
	g := newGame(t)

	out, err := runCLI(t, g.Mediator, "admin", "mint", "bob", "--rare", "--name", "Hill", "--actor", helpers.AdminAddress)
	require.NoError(t, err)
	assert.Contains(t, out, "Minted rare house")

	houses, err := g.Send(&queries.GetHousesByOwnerQuery{Owner: "bob"})
	require.NoError(t, err)
	list := houses.(*queries.GetHousesByOwnerResponse).Houses
	require.Len(t, list, 1)

	out, err = runCLI(t, g.Mediator, "house", "show", itoa(list[0].ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Hill")
	assert.Contains(t, out, "inactive")
}

func TestParseSelector(t *testing.T) {
	all, err := parseSelector("all")
	require.NoError(t, err)
	assert.Equal(t, resource.Selector{true, true, true, true, true}, all)

	sel, err := parseSelector("lumber,BRICK_FACTORY")
	require.NoError(t, err)
	assert.Equal(t, resource.Selector{false, true, true, false, false}, sel)

	_, err = parseSelector("")
	assert.Error(t, err)
	_, err = parseSelector("gold")
	assert.Error(t, err)
}

func TestEventStreamURL(t *testing.T) {
	u, err := eventStreamURL("https://game.example/base/", "alice", "4")
	require.NoError(t, err)
	assert.Equal(t, "wss://game.example/base/v1/events/stream?actor=alice&house=4", u)

	_, err = eventStreamURL("http://localhost:8080", "", "x")
	assert.Error(t, err)
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://hs:xxxxx@db:5432/homestead", maskPassword("postgresql://hs:secret@db:5432/homestead"))
	assert.Equal(t, "homestead.db", maskPassword("homestead.db"))
}

func TestAddonTree_ShowsHoldingsUnderEveryPrerequisite(t *testing.T) {
	color.Disable()
	states := map[settings.AddonID]AddonState{4: AddonActive, 5: AddonOwned}
	f := NewAddonTreeFormatter(settings.Default(), states, false)

	tree := f.FormatTree()
	assert.Equal(t, 2, strings.Count(tree, "Finished Basement"))
	assert.Contains(t, tree, "[✓] #4 Kitchen Model")
	assert.Contains(t, tree, "[~] #5 Bathroom Remodel")
	assert.Equal(t, "Addons: 2 of 10 owned, 1 active", f.FormatSummary())
}
