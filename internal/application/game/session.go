package game

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/stake"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// Session is the working set of one operation. Everything it loads is settled to the
// operation's instant before it is handed out, and nothing reaches the stores until the
// runner flushes it.
type Session struct {
	ctx    context.Context
	stores Stores
	table  *settings.Table
	now    time.Time
	actor  shared.Address
	admin  shared.Address

	houses   map[house.ID]*house.House
	settled  map[string]bool
	accounts map[string]*ledger.Account
	wallets  map[string]*token.Wallet
	stakes   map[int64]*stake.Position

	entries  []*ledger.Entry
	events   []*event.Event
	harvests []harvestNote
	settledN int
}

type harvestNote struct {
	rare  bool
	token decimal.Decimal
	died  bool
}

func newSession(ctx context.Context, stores Stores, table *settings.Table, now time.Time, actor, admin shared.Address) *Session {
	return &Session{
		ctx:      ctx,
		stores:   stores,
		table:    table,
		now:      now,
		actor:    actor,
		admin:    admin,
		houses:   make(map[house.ID]*house.House),
		settled:  make(map[string]bool),
		accounts: make(map[string]*ledger.Account),
		wallets:  make(map[string]*token.Wallet),
		stakes:   make(map[int64]*stake.Position),
	}
}

func (s *Session) Context() context.Context { return s.ctx }
func (s *Session) Now() time.Time { return s.now }
func (s *Session) Table() *settings.Table { return s.table }
func (s *Session) Actor() shared.Address { return s.actor }
func (s *Session) Stores() Stores { return s.stores }

// RequireAdmin rejects actors other than the configured admin
func (s *Session) RequireAdmin(op string) error {
	if s.admin.IsZero() || !s.actor.Equals(s.admin) {
		return shared.PermissionDenied(op)
	}
	return nil
}

// House loads a house with every house of its owner settled to now.
func (s *Session) House(id house.ID) (*house.House, error) {
	if h, ok := s.houses[id]; ok {
		return h, nil
	}
	loaded, err := s.stores.Houses.FindByID(s.ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.SettleOwner(loaded.Owner()); err != nil {
		return nil, err
	}
	if h, ok := s.houses[id]; ok {
		return h, nil
	}
	s.houses[id] = loaded
	return loaded, nil
}

// OwnedHouse loads a house and rejects actors who do not own it.
func (s *Session) OwnedHouse(id house.ID, op string) (*house.House, error) {
	h, err := s.House(id)
	if err != nil {
		return nil, err
	}
	if !h.Owner().Equals(s.actor) {
		return nil, shared.PermissionDenied(op)
	}
	return h, nil
}

// AddHouse puts a freshly minted house into the working set
func (s *Session) AddHouse(h *house.House) {
	s.houses[h.ID()] = h
}

// HousesOf returns the owner's settled houses in id order.
func (s *Session) HousesOf(owner shared.Address) ([]*house.House, error) {
	if err := s.SettleOwner(owner); err != nil {
		return nil, err
	}
	var out []*house.House
	for _, h := range s.houses {
		if h.Owner().Equals(owner) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// SettleOwner settles every house of owner to now and credits the power they produced to
// the owner, capped at the owner's power limit. Each owner is settled once per session.
func (s *Session) SettleOwner(owner shared.Address) error {
	key := owner.String()
	if s.settled[key] {
		return nil
	}
	s.settled[key] = true

	loaded, err := s.stores.Houses.FindByOwner(s.ctx, owner)
	if err != nil {
		return err
	}

	power := decimal.Zero
	for _, l := range loaded {
		h, ok := s.houses[l.ID()]
		if !ok {
			h = l
			s.houses[h.ID()] = h
		}
		if !h.Owner().Equals(owner) {
			continue
		}
		staked, err := s.StakedAmount(h.ID())
		if err != nil {
			return err
		}
		settlement := h.Settle(s.now, s.table, staked)
		power = power.Add(settlement.Power)
		s.settledN++
	}

	if !power.IsPositive() {
		return nil
	}
	account, err := s.Account(owner)
	if err != nil {
		return err
	}
	limit, err := s.PowerLimit(owner)
	if err != nil {
		return err
	}
	credit := account.CappedPowerCredit(power, limit)
	return s.Credit(owner, ledger.EntryTypeAutoHarvest, nil, resource.Of(resource.Power, credit), "power auto-harvest")
}

// PowerLimit is the power cap for the owner's best windfarm.
func (s *Session) PowerLimit(owner shared.Address) (decimal.Decimal, error) {
	if err := s.SettleOwner(owner); err != nil {
		return decimal.Zero, err
	}
	level := 1
	for _, h := range s.houses {
		if h.Owner().Equals(owner) && h.IsActivated() && h.Level(resource.Power) > level {
			level = h.Level(resource.Power)
		}
	}
	return s.table.PowerLimit(level), nil
}

// Account returns the owner's resource account
func (s *Session) Account(owner shared.Address) (*ledger.Account, error) {
	if a, ok := s.accounts[owner.String()]; ok {
		return a, nil
	}
	a, err := s.stores.Accounts.Load(s.ctx, owner)
	if err != nil {
		return nil, err
	}
	s.accounts[owner.String()] = a
	return a, nil
}

// Wallet returns the owner's token wallet
func (s *Session) Wallet(owner shared.Address) (*token.Wallet, error) {
	if w, ok := s.wallets[owner.String()]; ok {
		return w, nil
	}
	w, err := s.stores.Wallets.Load(s.ctx, owner)
	if err != nil {
		return nil, err
	}
	s.wallets[owner.String()] = w
	return w, nil
}

// Position returns the stake position of a house
func (s *Session) Position(id house.ID) (*stake.Position, error) {
	if p, ok := s.stakes[int64(id)]; ok {
		return p, nil
	}
	p, err := s.stores.Stakes.Find(s.ctx, int64(id))
	if err != nil {
		return nil, err
	}
	s.stakes[int64(id)] = p
	return p, nil
}

// StakedAmount is the asset token staked against a house
func (s *Session) StakedAmount(id house.ID) (decimal.Decimal, error) {
	p, err := s.Position(id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Amount(), nil
}

// Debit charges a cost to the owner, rejecting overdraws.
func (s *Session) Debit(owner shared.Address, entryType ledger.EntryType, id *house.ID, cost resource.Bundle, description string) error {
	account, err := s.Account(owner)
	if err != nil {
		return err
	}
	entry, err := account.Debit(s.now, entryType, houseRef(id), cost, description)
	if err != nil {
		return err
	}
	s.record(entry)
	return nil
}

// Credit adds resources to the owner.
func (s *Session) Credit(owner shared.Address, entryType ledger.EntryType, id *house.ID, amount resource.Bundle, description string) error {
	account, err := s.Account(owner)
	if err != nil {
		return err
	}
	entry, err := account.Credit(s.now, entryType, houseRef(id), amount, description)
	if err != nil {
		return err
	}
	s.record(entry)
	return nil
}

// Exchange posts a conversion as one entry: cost leaves the owner and gained arrives.
func (s *Session) Exchange(owner shared.Address, entryType ledger.EntryType, id *house.ID, cost, gained resource.Bundle, description string) error {
	account, err := s.Account(owner)
	if err != nil {
		return err
	}
	entry, err := account.Post(s.now, entryType, houseRef(id), gained.Sub(cost), description, nil)
	if err != nil {
		return err
	}
	s.record(entry)
	return nil
}

// CheckPowerHeadroom rejects power that would push the owner over the power limit.
func (s *Session) CheckPowerHeadroom(owner shared.Address, power decimal.Decimal) error {
	account, err := s.Account(owner)
	if err != nil {
		return err
	}
	limit, err := s.PowerLimit(owner)
	if err != nil {
		return err
	}
	if account.Balance(resource.Power).Add(power).GreaterThan(limit) {
		return shared.NewDomainError(shared.KindBounds, "exceed the max power limit")
	}
	return nil
}

func (s *Session) record(entry *ledger.Entry) {
	if entry != nil {
		s.entries = append(s.entries, entry)
	}
}

// NoteHarvest remembers a harvest outcome for the metrics recorded after commit
func (s *Session) NoteHarvest(h *house.House, res house.HarvestResult) {
	s.harvests = append(s.harvests, harvestNote{rare: h.IsRare(), token: res.Token, died: res.Died})
}

// Emit records an event not tied to a house
func (s *Session) Emit(typ event.Type, data map[string]interface{}) {
	s.events = append(s.events, event.New(s.now, s.actor, nil, typ, data))
}

// EmitHouse records an event about one house
func (s *Session) EmitHouse(typ event.Type, id house.ID, data map[string]interface{}) {
	s.events = append(s.events, event.New(s.now, s.actor, houseRef(&id), typ, data))
}

// Events returns what the operation emitted so far
func (s *Session) Events() []*event.Event {
	return s.events
}

// flush writes the working set back in a fixed order.
func (s *Session) flush() error {
	ids := make([]house.ID, 0, len(s.houses))
	for id := range s.houses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := s.stores.Houses.Save(s.ctx, s.houses[id]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(s.accounts) {
		if err := s.stores.Accounts.Save(s.ctx, s.accounts[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(s.wallets) {
		if err := s.stores.Wallets.Save(s.ctx, s.wallets[key]); err != nil {
			return err
		}
	}
	for _, p := range s.stakes {
		if err := s.stores.Stakes.Save(s.ctx, p); err != nil {
			return err
		}
	}
	for _, e := range s.entries {
		if err := s.stores.Entries.Create(s.ctx, e); err != nil {
			return err
		}
	}
	if len(s.events) > 0 {
		if err := s.stores.Events.Append(s.ctx, s.events); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func houseRef(id *house.ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
