package queries

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

// HouseDTO is a settled view of one house
type HouseDTO struct {
	ID          int64
	Owner       string
	Name        string
	Rare        bool
	Activated   bool
	ActivatedAt *time.Time
	Dead        bool
	DeadAt      *time.Time

	Levels         [resource.Count]int
	PendingRewards resource.Bundle
	PendingToken   decimal.Decimal
	Lifetime       decimal.Decimal
	HarvestLimit   decimal.Decimal
	Staked         decimal.Decimal

	Durability    decimal.Decimal
	MaxDurability decimal.Decimal
	Multiplier    decimal.Decimal
	HandymanUsed  bool
	Boosts        []BoostDTO

	Addons         []AddonDTO
	Toolsheds      []int
	ActiveToolshed int

	Fireplace          bool
	Harvester          bool
	ConcreteFoundation bool
	FirepitLumber      decimal.Decimal
	FirepitRemainDays  int64
	Overdrive          map[string]time.Time

	Gathered    int
	GatherLimit int
}

// AddonDTO is one owned addon
type AddonDTO struct {
	ID          int
	Name        string
	Active      bool
	PurchasedAt time.Time
}

// BoostDTO is one fortification record
type BoostDTO struct {
	Material  string
	AppliedAt time.Time
	Magnitude decimal.Decimal
	Active    bool
}

func toHouseDTO(h *house.House, staked decimal.Decimal, now time.Time, t *settings.Table) *HouseDTO {
	dto := &HouseDTO{
		ID:                 int64(h.ID()),
		Owner:              h.Owner().String(),
		Name:               h.Name(),
		Rare:               h.IsRare(),
		Activated:          h.IsActivated(),
		Dead:               h.IsDead(),
		Levels:             h.Levels(),
		PendingRewards:     h.PendingRewards(),
		PendingToken:       h.PendingTokenReward(),
		Lifetime:           h.LifetimeHarvested(),
		HarvestLimit:       t.HarvestLimit(h.IsRare()),
		Staked:             staked,
		Durability:         h.Durability(now, t),
		MaxDurability:      h.MaxDurability(now, t),
		Multiplier:         h.Multiplier(now, t),
		HandymanUsed:       h.HandymanUsed(),
		ActiveToolshed:     int(h.ActiveToolshed()),
		Fireplace:          h.HasFireplace(),
		Harvester:          h.HasHarvester(),
		ConcreteFoundation: h.HasConcreteFoundation(),
		FirepitLumber:      h.FirepitLumber(),
		FirepitRemainDays:  h.FirepitRemainDays(),
		Overdrive:          make(map[string]time.Time),
		Gathered:           h.GatheredInWindow(now, t),
		GatherLimit:        h.GatherLimit(now, t),
	}
	if h.IsActivated() {
		at := h.ActivatedAt()
		dto.ActivatedAt = &at
	}
	if h.IsDead() {
		at := h.DeadAt()
		dto.DeadAt = &at
	}

	active := make(map[settings.AddonID]bool)
	for _, id := range h.ActiveAddons(now, t) {
		active[id] = true
	}
	for _, id := range h.Addons() {
		at, _ := h.AddonPurchasedAt(id)
		name := ""
		if spec, err := t.Addon(id); err == nil {
			name = spec.Name
		}
		dto.Addons = append(dto.Addons, AddonDTO{ID: int(id), Name: name, Active: active[id], PurchasedAt: at})
	}
	for _, id := range h.Toolsheds() {
		dto.Toolsheds = append(dto.Toolsheds, int(id))
	}
	for _, m := range settings.AllMaterials() {
		if b, ok := h.Boost(m); ok {
			dto.Boosts = append(dto.Boosts, BoostDTO{
				Material:  m.String(),
				AppliedAt: b.AppliedAt,
				Magnitude: b.Magnitude,
				Active:    h.BoostActive(m, now, t),
			})
		}
	}
	for _, kind := range resource.AllKinds() {
		if until := h.OverdriveUntil(kind); now.Before(until) {
			dto.Overdrive[kind.FacilityName()] = until
		}
	}
	return dto
}
