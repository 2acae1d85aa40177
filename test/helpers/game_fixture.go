package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	houseCommands "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// AdminAddress is the admin every test game is wired with
const AdminAddress = "admin"

// GameStart is the instant every test clock starts at
var GameStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// TestGame is a fully wired game over a real database and a mock clock
type TestGame struct {
	DB       *gorm.DB
	Clock    *shared.MockClock
	Table    *settings.Table
	Runner   *game.Runner
	Mediator mediator.Mediator
	Events   *EventRecorder
}

// NewTestGame wires a game over db with the built-in table
func NewTestGame(db *gorm.DB) (*TestGame, error) {
	return NewTestGameWithTable(db, settings.Default())
}

// NewTestGameWithTable wires a game over db with a custom table
func NewTestGameWithTable(db *gorm.DB, table *settings.Table) (*TestGame, error) {
	clock := shared.NewMockClock(GameStart)
	recorder := &EventRecorder{}
	runner := game.NewRunner(persistence.NewGormUnitOfWork(db), table, clock, shared.MustNewAddress(AdminAddress), recorder)
	m, err := setup.NewHandlerRegistry(runner).CreateConfiguredMediator()
	if err != nil {
		return nil, err
	}
	return &TestGame{DB: db, Clock: clock, Table: table, Runner: runner, Mediator: m, Events: recorder}, nil
}

// Send dispatches a request through the mediator
func (g *TestGame) Send(request mediator.Request) (mediator.Response, error) {
	return g.Mediator.Send(context.Background(), request)
}

// MintHouse mints a house for owner as the admin and returns its id
func (g *TestGame) MintHouse(owner string, rare bool) (int64, error) {
	resp, err := g.Send(&houseCommands.MintHouseCommand{Actor: AdminAddress, Owner: owner, Rare: rare})
	if err != nil {
		return 0, err
	}
	return resp.(*houseCommands.MintHouseResponse).HouseID, nil
}

// Fund credits owner with the given whole units of power, lumber, brick, concrete and steel
func (g *TestGame) Fund(owner string, power, lumber, brick, concrete, steel int64) error {
	_, err := g.Send(&gameCommands.AddResourceByAdminCommand{
		Actor:   AdminAddress,
		Owner:   owner,
		Amounts: resource.Units(power, lumber, brick, concrete, steel),
	})
	return err
}

// GrantTokens credits owner with land and asset token
func (g *TestGame) GrantTokens(owner string, land, asset int64) error {
	_, err := g.Send(&gameCommands.GrantTokensCommand{
		Actor: AdminAddress,
		Owner: owner,
		Land:  decimal.NewFromInt(land),
		Asset: decimal.NewFromInt(asset),
	})
	return err
}

// ActiveHouse mints and activates a house for owner
func (g *TestGame) ActiveHouse(owner string, rare bool) (int64, error) {
	id, err := g.MintHouse(owner, rare)
	if err != nil {
		return 0, err
	}
	if _, err := g.Send(&gameCommands.ActivateHouseCommand{Actor: owner, HouseID: id}); err != nil {
		return 0, fmt.Errorf("failed to activate house %d: %w", id, err)
	}
	return id, nil
}

// EventRecorder keeps every published event in order
type EventRecorder struct {
	events []*event.Event
}

// Publish records the batch
func (r *EventRecorder) Publish(_ context.Context, events []*event.Event) error {
	r.events = append(r.events, events...)
	return nil
}

// All returns every recorded event
func (r *EventRecorder) All() []*event.Event {
	return r.events
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []event.Type {
	types := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// Last returns the most recent event of typ, or nil
func (r *EventRecorder) Last(typ event.Type) *event.Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == typ {
			return r.events[i]
		}
	}
	return nil
}

// Reset forgets every recorded event
func (r *EventRecorder) Reset() {
	r.events = nil
}
