package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

var alice = shared.MustNewAddress("alice")

type recordedFlow struct {
	entryType string
	kind      string
	amount    float64
}

type fakeRecorder struct {
	flows       []recordedFlow
	events      []string
	settlements []int
	died        int
}

func (f *fakeRecorder) RecordResourceFlow(entryType string, category string, kind string, amount float64) {
	f.flows = append(f.flows, recordedFlow{entryType: entryType, kind: kind, amount: amount})
}
func (f *fakeRecorder) RecordTokenHarvest(rare bool, amount float64) {}
func (f *fakeRecorder) RecordHouseDied(rare bool)                    { f.died++ }
func (f *fakeRecorder) RecordEvent(eventType string)                 { f.events = append(f.events, eventType) }
func (f *fakeRecorder) RecordSettlement(houses int)                  { f.settlements = append(f.settlements, houses) }

type failingPublisher struct {
	calls int
}

func (p *failingPublisher) Publish(_ context.Context, _ []*event.Event) error {
	p.calls++
	return errors.New("observer is gone")
}

func installRecorder(t *testing.T) *fakeRecorder {
	t.Helper()
	rec := &fakeRecorder{}
	metrics.SetGlobalGameCollector(rec)
	t.Cleanup(func() { metrics.SetGlobalGameCollector(nil) })
	return rec
}

func TestRunner_RecordsMetricsForCommittedOperationsOnly(t *testing.T) {
	// Arrange
	rec := installRecorder(t)
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	rec.flows, rec.events = nil, nil

	// Act
	require.NoError(t, g.Fund("alice", 0, 12, 0, 0, 0))
	_, upgradeErr := g.Send(&gameCommands.UpgradeFacilityCommand{Actor: "alice", HouseID: id, Facility: "LUMBER_MILL"})

	// Assert
	require.Error(t, upgradeErr)
	require.Len(t, rec.flows, 1)
	assert.Equal(t, recordedFlow{entryType: "ADMIN_CREDIT", kind: "LUMBER", amount: 12}, rec.flows[0])
	assert.Equal(t, []string{string(event.ResourcesGranted)}, rec.events)
}

func TestRunner_SettlementCountsEveryHouseOfTheOwner(t *testing.T) {
	rec := installRecorder(t)
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	first, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)
	_, err = g.ActiveHouse("alice", false)
	require.NoError(t, err)
	rec.settlements = nil
	g.Clock.AdvanceDays(1)

	_, err = g.Send(&gameCommands.HarvestCommand{Actor: "alice", HouseID: first, Selector: resource.Selector{false, true}})
	require.NoError(t, err)

	require.NotEmpty(t, rec.settlements)
	assert.Equal(t, 2, rec.settlements[len(rec.settlements)-1])
}

func TestRunner_PublisherFailureDoesNotUndoTheCommit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(helpers.GameStart)
	publisher := &failingPublisher{}
	recorder := &helpers.EventRecorder{}
	runner := game.NewRunner(persistence.NewGormUnitOfWork(db), settings.Default(), clock, shared.MustNewAddress(helpers.AdminAddress), publisher, recorder)
	m, err := setup.NewHandlerRegistry(runner).CreateConfiguredMediator()
	require.NoError(t, err)

	// Act
	_, err = m.Send(context.Background(), &gameCommands.AddResourceByAdminCommand{
		Actor:   helpers.AdminAddress,
		Owner:   "alice",
		Amounts: resource.Units(5, 0, 0, 0, 0),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, publisher.calls)
	assert.Len(t, recorder.All(), 1, "later publishers still receive the batch")
	account, err := persistence.NewGormAccountRepository(db).Load(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, resource.Units(5, 0, 0, 0, 0).Equal(account.Balances()))
}

func TestRunner_ClockNeverRunsBackwards(t *testing.T) {
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	g.Clock.AdvanceDays(2)
	var first, second time.Time

	require.NoError(t, g.Runner.Execute(context.Background(), "probe", alice, func(s *game.Session) error {
		first = s.Now()
		return nil
	}))
	g.Clock.SetTime(helpers.GameStart)
	require.NoError(t, g.Runner.View(context.Background(), alice, func(s *game.Session) error {
		second = s.Now()
		return nil
	}))

	assert.Equal(t, first, second)
}

func TestRunner_ViewPersistsNothing(t *testing.T) {
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)

	err = g.Runner.View(context.Background(), alice, func(s *game.Session) error {
		return s.Credit(alice, ledger.EntryTypeAdminCredit, nil, resource.Units(0, 50, 0, 0, 0), "never stored")
	})
	require.NoError(t, err)

	account, err := persistence.NewGormAccountRepository(g.DB).Load(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, account.Balances().IsZero())
	assert.Empty(t, g.Events.All())
}

func TestSession_PowerCreditIsCappedAtTheLimit(t *testing.T) {
	// Arrange
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	_, err = g.ActiveHouse("alice", false)
	require.NoError(t, err)
	require.NoError(t, g.Fund("alice", 198, 0, 0, 0, 0))
	g.Clock.AdvanceDays(3)

	// Act
	var balance, limit string
	err = g.Runner.View(context.Background(), alice, func(s *game.Session) error {
		if err := s.SettleOwner(alice); err != nil {
			return err
		}
		account, err := s.Account(alice)
		if err != nil {
			return err
		}
		l, err := s.PowerLimit(alice)
		if err != nil {
			return err
		}
		balance, limit = account.Balance(resource.Power).String(), l.String()
		return s.CheckPowerHeadroom(alice, l.Sub(account.Balance(resource.Power)))
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "200", balance)
	assert.Equal(t, "200", limit)
}

func TestSession_RequireAdmin(t *testing.T) {
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)

	err = g.Runner.View(context.Background(), alice, func(s *game.Session) error {
		return s.RequireAdmin("mintHouse")
	})

	assert.True(t, shared.IsKind(err, shared.KindAuthorization))
	assert.EqualError(t, err, "mintHouse: permission denied")
}

func TestValidateRequest_ReportsFirstFailingField(t *testing.T) {
	err := game.ValidateRequest(&gameCommands.BuyAddonCommand{Actor: "alice", HouseID: 0, AddonID: 0})

	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))
	assert.EqualError(t, err, "addon_id: must be at least 1")

	_, err = game.ParseActor("  ")
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))
}
