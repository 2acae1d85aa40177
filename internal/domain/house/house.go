package house

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zyedidia/generic/mapset"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ID identifies a house
type ID int64

// Boost is one fortification applied to a house. A house carries at most one boost per
// material; fortifying again with the same material replaces it.
type Boost struct {
	AppliedAt time.Time
	Magnitude decimal.Decimal
}

// House is the aggregate root for one owned house.
//
// Every field that changes with time is stored as a checkpoint (a value plus the instant it
// was true). Settle folds elapsed time into those checkpoints; operations must settle first.
type House struct {
	id        ID
	owner     shared.Address
	name      string
	rare      bool
	createdAt time.Time

	activated   bool
	activatedAt time.Time

	levels         [resource.Count]int
	lastRewardAt   [resource.Count]time.Time
	reward         resource.Bundle
	overdriveUntil [resource.Count]time.Time

	addons         map[settings.AddonID]time.Time
	toolsheds      mapset.Set[settings.ToolshedID]
	activeToolshed settings.ToolshedID

	fireplace     bool
	harvester     bool
	foundation    bool
	firepitLumber decimal.Decimal
	firepitAt     time.Time

	durability   decimal.Decimal
	durabilityAt time.Time
	boosts       [settings.MaterialCount]*Boost
	handymanUsed bool

	gatherWindowStart time.Time
	gathered          int

	tokenAt      time.Time
	tokenPending decimal.Decimal
	lifetime     decimal.Decimal
	dead         bool
	deadAt       time.Time
}

// NewHouse mints an inactive house. Facilities start at level 1 and durability at the
// configured initial value; no checkpoint is meaningful until Activate.
func NewHouse(id ID, owner shared.Address, rare bool, now time.Time, table *settings.Table) (*House, error) {
	if id < 0 {
		return nil, shared.NewValidationError("id", "house id cannot be negative")
	}
	if owner.IsZero() {
		return nil, shared.NewValidationError("owner", "owner address is required")
	}
	h := &House{
		id:         id,
		owner:      owner,
		rare:       rare,
		createdAt:  now,
		addons:     make(map[settings.AddonID]time.Time),
		toolsheds:  mapset.New[settings.ToolshedID](),
		durability: table.Durability.Initial,
	}
	for i := range h.levels {
		h.levels[i] = 1
	}
	return h, nil
}

// Getters

func (h *House) ID() ID { return h.id }
func (h *House) Owner() shared.Address { return h.owner }
func (h *House) Name() string { return h.name }
func (h *House) IsRare() bool { return h.rare }
func (h *House) CreatedAt() time.Time { return h.createdAt }
func (h *House) IsActivated() bool { return h.activated }
func (h *House) ActivatedAt() time.Time { return h.activatedAt }
func (h *House) Level(kind resource.Kind) int { return h.levels[kind] }
func (h *House) Levels() [resource.Count]int { return h.levels }
func (h *House) PendingRewards() resource.Bundle { return h.reward }
func (h *House) ActiveToolshed() settings.ToolshedID { return h.activeToolshed }
func (h *House) HasFireplace() bool { return h.fireplace }
func (h *House) HasHarvester() bool { return h.harvester }
func (h *House) HasConcreteFoundation() bool { return h.foundation }
func (h *House) FirepitLumber() decimal.Decimal { return h.firepitLumber }
func (h *House) HandymanUsed() bool { return h.handymanUsed }
func (h *House) PendingTokenReward() decimal.Decimal { return h.tokenPending }
func (h *House) LifetimeHarvested() decimal.Decimal { return h.lifetime }
func (h *House) IsDead() bool { return h.dead }
func (h *House) DeadAt() time.Time { return h.deadAt }
func (h *House) OverdriveUntil(k resource.Kind) time.Time { return h.overdriveUntil[k] }

// HasToolshed reports whether the toolshed type was bought for this house
func (h *House) HasToolshed(id settings.ToolshedID) bool {
	return h.toolsheds.Has(id)
}

// Toolsheds returns the owned toolshed types in ascending order.
func (h *House) Toolsheds() []settings.ToolshedID {
	out := make([]settings.ToolshedID, 0, h.toolsheds.Size())
	h.toolsheds.Each(func(id settings.ToolshedID) {
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OwnsAddon reports whether the addon is on record, expired or not.
func (h *House) OwnsAddon(id settings.AddonID) bool {
	_, ok := h.addons[id]
	return ok
}

// Addons returns owned addon ids in ascending order, including expired ones.
func (h *House) Addons() []settings.AddonID {
	out := make([]settings.AddonID, 0, len(h.addons))
	for id := range h.addons {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddonPurchasedAt returns when an owned addon was bought (or last fertilized).
func (h *House) AddonPurchasedAt(id settings.AddonID) (time.Time, bool) {
	t, ok := h.addons[id]
	return t, ok
}

// Boost returns the fortification record for a material, if any.
func (h *House) Boost(m settings.Material) (Boost, bool) {
	if !m.IsValid() || h.boosts[m] == nil {
		return Boost{}, false
	}
	return *h.boosts[m], true
}

// SetName renames the house.
func (h *House) SetName(name string) error {
	if len(name) > 64 {
		return shared.NewValidationError("name", "name must be at most 64 characters")
	}
	h.name = name
	return nil
}

// TransferTo hands the house to a new owner. Staking rules are enforced by the caller.
func (h *House) TransferTo(owner shared.Address) error {
	if owner.IsZero() {
		return shared.NewValidationError("owner", "owner address is required")
	}
	if owner.Equals(h.owner) {
		return conflict("house already belongs to %s", owner)
	}
	h.owner = owner
	return nil
}

// Activate seeds every checkpoint to now.
func (h *House) Activate(now time.Time) error {
	if h.activated {
		return errAlreadyActivated
	}
	h.activated = true
	h.activatedAt = now
	for i := range h.lastRewardAt {
		h.lastRewardAt[i] = now
	}
	h.durabilityAt = now
	h.firepitAt = now
	h.tokenAt = now
	return nil
}

// EnsureOperable rejects inactive and dead houses.
func (h *House) EnsureOperable() error {
	if !h.activated {
		return errNotActivated
	}
	if h.dead {
		return errDead
	}
	return nil
}

// Clone returns a deep copy, used by read paths that settle without persisting.
func (h *House) Clone() *House {
	c := *h
	c.addons = make(map[settings.AddonID]time.Time, len(h.addons))
	for id, t := range h.addons {
		c.addons[id] = t
	}
	c.toolsheds = mapset.New[settings.ToolshedID]()
	h.toolsheds.Each(func(id settings.ToolshedID) {
		c.toolsheds.Put(id)
	})
	for i, b := range h.boosts {
		if b != nil {
			cp := *b
			c.boosts[i] = &cp
		}
	}
	return &c
}
