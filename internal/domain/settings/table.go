package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// MaxLevel is the highest facility level; level 1 is the floor.
const MaxLevel = 5

// AddonID identifies an addon in the catalog
type AddonID int

// ToolshedID identifies a toolshed type
type ToolshedID int

// BoostDecay selects how a fortification boost leaves max durability.
type BoostDecay string

const (
	// BoostDecayStep keeps the full magnitude until the window ends.
	BoostDecayStep BoostDecay = "step"
	// BoostDecayLinear shrinks the magnitude linearly to zero across the window.
	BoostDecayLinear BoostDecay = "linear"
)

// Table is the configuration table: every rate, cost and limit the engines read.
// The engines treat it as immutable for the duration of an operation.
type Table struct {
	Facilities [resource.Count]FacilitySpec
	// PowerLimits caps the owner's power balance, indexed by windfarm level - 1.
	PowerLimits [MaxLevel]decimal.Decimal

	Multiplier    MultiplierSpec
	Addons        []AddonSpec
	Toolsheds     []ToolshedSpec
	Durability    DurabilitySpec
	Fortification FortificationSpec
	Harvest       HarvestSpec
	Items         ItemSpec
	Fireplace     FireplaceSpec
	Firepit       FirepitSpec
	Overdrive     OverdriveSpec
	Gather        GatherSpec
	LandToken     LandTokenSpec
	Minting       MintingSpec

	// SalvageRefundPercent of an addon's cost comes back on salvage.
	SalvageRefundPercent int64
	// SecondsPerYear is the token reward period.
	SecondsPerYear int64
}

// FacilitySpec holds one facility's per-level generation rates (units per day) and the cost of
// upgrading into each level. UpgradeCosts[0] is unused since level 1 is never bought.
type FacilitySpec struct {
	Rates        [MaxLevel]decimal.Decimal
	UpgradeCosts [MaxLevel]resource.Bundle
}

// MultiplierSpec holds the base multipliers by rarity.
type MultiplierSpec struct {
	Standard decimal.Decimal
	Rare     decimal.Decimal
}

// AddonSpec describes one node of the addon dependency graph.
type AddonSpec struct {
	ID                AddonID
	Name              string
	Cost              resource.Bundle
	MultiplierPercent int64
	Requires          []AddonID
	// RequiresFortification names a material whose boost must be active, if set.
	RequiresFortification *Material
	// Lifetime is how long the addon stays active after purchase; zero means forever.
	Lifetime     time.Duration
	GatherBonus  int
	Fertilizable bool
}

// ToolshedSpec describes a toolshed type.
type ToolshedSpec struct {
	ID                     ToolshedID
	Name                   string
	Cost                   resource.Bundle
	GenerationBonusPercent [resource.Count]int64
	RepairDiscountPercent  [resource.Count]int64
}

// DurabilitySpec configures decay and repair.
type DurabilitySpec struct {
	Initial                decimal.Decimal
	Floor                  decimal.Decimal
	DecayPercent           int64
	FoundationDecayPercent int64
	RepairMinBatch         decimal.Decimal
	// RepairCostPerPoint is charged per durability point repaired.
	RepairCostPerPoint resource.Bundle
	// RepairAddonSurchargePercent is added to the repair cost per owned addon.
	RepairAddonSurchargePercent int64
}

// FortificationSpec configures fortify.
type FortificationSpec struct {
	Boost  decimal.Decimal
	Window time.Duration
	Decay  BoostDecay
	Costs  [MaterialCount]resource.Bundle
}

// HarvestSpec configures harvest cost and the lifetime token cap.
type HarvestSpec struct {
	StandardLimit decimal.Decimal
	RareLimit     decimal.Decimal
	// SlotPowerCost is the power charged per selected harvest slot.
	SlotPowerCost            [resource.Count]decimal.Decimal
	HarvesterDiscountPercent int64
}

// ItemSpec holds the one-off item prices.
type ItemSpec struct {
	Fireplace          resource.Bundle
	Harvester          resource.Bundle
	ConcreteFoundation resource.Bundle
	ToolshedSwitch     resource.Bundle
	FertilizeGarden    resource.Bundle
}

// FireplaceSpec configures lumber burning.
type FireplaceSpec struct {
	BurnRatioPercent int64
}

// FirepitSpec configures the front-loaded firepit.
type FirepitSpec struct {
	MaxLumber      decimal.Decimal
	PowerPerLumber decimal.Decimal
}

// OverdriveSpec configures facility overdrive.
type OverdriveSpec struct {
	PowerCost    decimal.Decimal
	BoostPercent int64
	Duration     time.Duration
}

// GatherSpec configures gathering lumber with power.
type GatherSpec struct {
	DailyLimit         int
	PowerCostPerLumber decimal.Decimal
	Window             time.Duration
}

// LandTokenSpec configures land-token priced actions.
type LandTokenSpec struct {
	PowerPerLandToken decimal.Decimal
	HandymanCost      decimal.Decimal
}

// MintingSpec configures the house registry.
type MintingSpec struct {
	RareLimit int
}

// GenerationRate returns the per-day rate of a facility at a level (clamped to [1,5]).
func (t *Table) GenerationRate(kind resource.Kind, level int) decimal.Decimal {
	return t.Facilities[kind].Rates[clampLevel(level)-1]
}

// UpgradeCost returns the cost of upgrading kind into toLevel.
func (t *Table) UpgradeCost(kind resource.Kind, toLevel int) (resource.Bundle, error) {
	if !kind.IsValid() {
		return resource.Bundle{}, shared.Errorf(shared.KindInvalidArgument, "invalid facility type")
	}
	if toLevel < 2 || toLevel > MaxLevel {
		return resource.Bundle{}, shared.Errorf(shared.KindBounds, "not allowed facility levels")
	}
	return t.Facilities[kind].UpgradeCosts[toLevel-1], nil
}

// PowerLimit returns the power cap for a windfarm level.
func (t *Table) PowerLimit(windfarmLevel int) decimal.Decimal {
	return t.PowerLimits[clampLevel(windfarmLevel)-1]
}

// BaseMultiplier returns the rarity base multiplier.
func (t *Table) BaseMultiplier(rare bool) decimal.Decimal {
	if rare {
		return t.Multiplier.Rare
	}
	return t.Multiplier.Standard
}

// HarvestLimit returns the lifetime token cap by rarity.
func (t *Table) HarvestLimit(rare bool) decimal.Decimal {
	if rare {
		return t.Harvest.RareLimit
	}
	return t.Harvest.StandardLimit
}

// Toolshed looks up a toolshed type.
func (t *Table) Toolshed(id ToolshedID) (*ToolshedSpec, error) {
	for i := range t.Toolsheds {
		if t.Toolsheds[i].ID == id {
			return &t.Toolsheds[i], nil
		}
	}
	return nil, shared.Errorf(shared.KindInvalidArgument, "invalid toolshed type %d", id)
}

// FortificationCost returns the cost of fortifying with a material.
func (t *Table) FortificationCost(m Material) (resource.Bundle, error) {
	if !m.IsValid() {
		return resource.Bundle{}, shared.Errorf(shared.KindInvalidArgument, "invalid fortification type")
	}
	return t.Fortification.Costs[m], nil
}

// DecayPercent returns the daily durability decay, reduced by a concrete foundation.
func (t *Table) DecayPercent(hasFoundation bool) int64 {
	if hasFoundation {
		return t.Durability.FoundationDecayPercent
	}
	return t.Durability.DecayPercent
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
