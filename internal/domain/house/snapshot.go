package house

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zyedidia/generic/mapset"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Snapshot is the flat, exported form of a house used by persistence.
type Snapshot struct {
	ID        ID
	Owner     string
	Name      string
	Rare      bool
	CreatedAt time.Time

	Activated   bool
	ActivatedAt time.Time

	Levels         [resource.Count]int
	LastRewardAt   [resource.Count]time.Time
	Reward         resource.Bundle
	OverdriveUntil [resource.Count]time.Time

	Addons         map[settings.AddonID]time.Time
	Toolsheds      []settings.ToolshedID
	ActiveToolshed settings.ToolshedID

	Fireplace     bool
	Harvester     bool
	Foundation    bool
	FirepitLumber decimal.Decimal
	FirepitAt     time.Time

	Durability   decimal.Decimal
	DurabilityAt time.Time
	Boosts       [settings.MaterialCount]*Boost
	HandymanUsed bool

	GatherWindowStart time.Time
	Gathered          int

	TokenAt      time.Time
	TokenPending decimal.Decimal
	Lifetime     decimal.Decimal
	Dead         bool
	DeadAt       time.Time
}

// Snapshot exports the house state
func (h *House) Snapshot() Snapshot {
	c := h.Clone()
	return Snapshot{
		ID:                c.id,
		Owner:             c.owner.String(),
		Name:              c.name,
		Rare:              c.rare,
		CreatedAt:         c.createdAt,
		Activated:         c.activated,
		ActivatedAt:       c.activatedAt,
		Levels:            c.levels,
		LastRewardAt:      c.lastRewardAt,
		Reward:            c.reward,
		OverdriveUntil:    c.overdriveUntil,
		Addons:            c.addons,
		Toolsheds:         c.Toolsheds(),
		ActiveToolshed:    c.activeToolshed,
		Fireplace:         c.fireplace,
		Harvester:         c.harvester,
		Foundation:        c.foundation,
		FirepitLumber:     c.firepitLumber,
		FirepitAt:         c.firepitAt,
		Durability:        c.durability,
		DurabilityAt:      c.durabilityAt,
		Boosts:            c.boosts,
		HandymanUsed:      c.handymanUsed,
		GatherWindowStart: c.gatherWindowStart,
		Gathered:          c.gathered,
		TokenAt:           c.tokenAt,
		TokenPending:      c.tokenPending,
		Lifetime:          c.lifetime,
		Dead:              c.dead,
		DeadAt:            c.deadAt,
	}
}

// FromSnapshot rebuilds a house from persisted state. It validates the structural
// invariants a stored record must satisfy.
func FromSnapshot(s Snapshot) (*House, error) {
	owner, err := shared.NewAddress(s.Owner)
	if err != nil {
		return nil, err
	}
	for i, lvl := range s.Levels {
		if lvl < 1 || lvl > settings.MaxLevel {
			return nil, shared.NewValidationError("levels", "facility "+resource.Kind(i).FacilityName()+" level out of range")
		}
	}

	h := &House{
		id:                s.ID,
		owner:             owner,
		name:              s.Name,
		rare:              s.Rare,
		createdAt:         s.CreatedAt,
		activated:         s.Activated,
		activatedAt:       s.ActivatedAt,
		levels:            s.Levels,
		lastRewardAt:      s.LastRewardAt,
		reward:            s.Reward,
		overdriveUntil:    s.OverdriveUntil,
		addons:            make(map[settings.AddonID]time.Time, len(s.Addons)),
		toolsheds:         mapset.New[settings.ToolshedID](),
		activeToolshed:    s.ActiveToolshed,
		fireplace:         s.Fireplace,
		harvester:         s.Harvester,
		foundation:        s.Foundation,
		firepitLumber:     s.FirepitLumber,
		firepitAt:         s.FirepitAt,
		durability:        s.Durability,
		durabilityAt:      s.DurabilityAt,
		handymanUsed:      s.HandymanUsed,
		gatherWindowStart: s.GatherWindowStart,
		gathered:          s.Gathered,
		tokenAt:           s.TokenAt,
		tokenPending:      s.TokenPending,
		lifetime:          s.Lifetime,
		dead:              s.Dead,
		deadAt:            s.DeadAt,
	}
	for id, at := range s.Addons {
		h.addons[id] = at
	}
	for _, id := range s.Toolsheds {
		h.toolsheds.Put(id)
	}
	if h.activeToolshed != 0 && !h.toolsheds.Has(h.activeToolshed) {
		return nil, shared.NewValidationError("active_toolshed", "active toolshed is not owned")
	}
	for i, b := range s.Boosts {
		if b != nil {
			cp := *b
			h.boosts[i] = &cp
		}
	}
	return h, nil
}
