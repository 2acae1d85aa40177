package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func units(vals ...int64) [MaxLevel]decimal.Decimal {
	var out [MaxLevel]decimal.Decimal
	for i, v := range vals {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func material(m Material) *Material { return &m }

// Default returns the built-in configuration table. configs/tuning.yaml mirrors it.
func Default() *Table {
	u := resource.Units
	return &Table{
		Facilities: [resource.Count]FacilitySpec{
			resource.Power: {
				Rates:        units(8, 10, 12, 14, 16),
				UpgradeCosts: [MaxLevel]resource.Bundle{{}, u(10, 5, 0, 0, 0), u(15, 10, 5, 0, 0), u(20, 15, 10, 5, 0), u(30, 20, 15, 10, 5)},
			},
			resource.Lumber: {
				Rates:        units(4, 5, 6, 7, 8),
				UpgradeCosts: [MaxLevel]resource.Bundle{{}, u(10, 5, 0, 0, 0), u(15, 10, 5, 0, 0), u(20, 15, 10, 5, 0), u(30, 20, 15, 10, 5)},
			},
			resource.Brick: {
				Rates:        units(3, 4, 5, 6, 7),
				UpgradeCosts: [MaxLevel]resource.Bundle{{}, u(10, 10, 0, 0, 0), u(15, 10, 10, 0, 0), u(20, 15, 10, 5, 0), u(30, 20, 15, 10, 5)},
			},
			resource.Concrete: {
				Rates:        units(2, 3, 4, 5, 6),
				UpgradeCosts: [MaxLevel]resource.Bundle{{}, u(10, 10, 5, 0, 0), u(15, 10, 10, 5, 0), u(20, 15, 10, 10, 0), u(30, 20, 15, 10, 5)},
			},
			resource.Steel: {
				Rates:        units(1, 2, 3, 4, 5),
				UpgradeCosts: [MaxLevel]resource.Bundle{{}, u(10, 10, 5, 5, 0), u(15, 10, 10, 5, 0), u(20, 15, 10, 10, 5), u(30, 20, 15, 10, 10)},
			},
		},
		PowerLimits: units(200, 220, 230, 240, 250),
		Multiplier: MultiplierSpec{
			Standard: decimal.NewFromInt(5),
			Rare:     decimal.RequireFromString("5.5"),
		},
		Addons: []AddonSpec{
			{ID: 1, Name: "Landscaping", Cost: u(0, 10, 5, 0, 0), MultiplierPercent: 110},
			{ID: 2, Name: "Garden", Cost: u(0, 5, 5, 0, 0), MultiplierPercent: 110, Requires: []AddonID{1}, Lifetime: 7 * shared.Day, Fertilizable: true},
			{ID: 3, Name: "Tree", Cost: u(0, 5, 0, 0, 0), MultiplierPercent: 105, GatherBonus: 1},
			{ID: 4, Name: "Kitchen Model", Cost: u(0, 10, 10, 5, 0), MultiplierPercent: 115},
			{ID: 5, Name: "Bathroom Remodel", Cost: u(0, 10, 10, 5, 0), MultiplierPercent: 115},
			{ID: 6, Name: "Jacuzzi Tub", Cost: u(0, 5, 10, 10, 0), MultiplierPercent: 112, Requires: []AddonID{5}},
			{ID: 7, Name: "Steel Siding", Cost: u(0, 0, 0, 5, 10), MultiplierPercent: 120, RequiresFortification: material(MaterialConcrete)},
			{ID: 8, Name: "Steel Application", Cost: u(0, 0, 5, 5, 10), MultiplierPercent: 115, Requires: []AddonID{4}},
			{ID: 9, Name: "Root Cellar", Cost: u(0, 10, 10, 0, 0), MultiplierPercent: 110, RequiresFortification: material(MaterialBrick)},
			{ID: 10, Name: "Finished Basement", Cost: u(0, 15, 15, 15, 10), MultiplierPercent: 125, Requires: []AddonID{4, 5}, RequiresFortification: material(MaterialSteel)},
		},
		Toolsheds: []ToolshedSpec{
			{ID: 1, Name: "Carpentry Shed", Cost: u(0, 10, 10, 0, 0), RepairDiscountPercent: [resource.Count]int64{0, 30, 0, 0, 0}},
			{ID: 2, Name: "Sawmill Shed", Cost: u(0, 10, 10, 0, 0), GenerationBonusPercent: [resource.Count]int64{0, 20, 0, 0, 0}},
			{ID: 3, Name: "Kiln Shed", Cost: u(0, 10, 10, 0, 0), GenerationBonusPercent: [resource.Count]int64{0, 0, 20, 0, 0}},
			{ID: 4, Name: "Mixer Shed", Cost: u(0, 10, 10, 5, 0), GenerationBonusPercent: [resource.Count]int64{0, 0, 0, 20, 0}},
			{ID: 5, Name: "Forge Shed", Cost: u(0, 10, 10, 5, 5), GenerationBonusPercent: [resource.Count]int64{0, 0, 0, 0, 20}},
		},
		Durability: DurabilitySpec{
			Initial:                     decimal.NewFromInt(100),
			Floor:                       decimal.NewFromInt(10),
			DecayPercent:                10,
			FoundationDecayPercent:      5,
			RepairMinBatch:              decimal.NewFromInt(10),
			RepairCostPerPoint:          resource.Bundle{decimal.Zero, decimal.RequireFromString("0.5"), decimal.RequireFromString("0.2"), decimal.Zero, decimal.Zero},
			RepairAddonSurchargePercent: 5,
		},
		Fortification: FortificationSpec{
			Boost:  decimal.NewFromInt(10),
			Window: 7 * shared.Day,
			Decay:  BoostDecayStep,
			Costs: [MaterialCount]resource.Bundle{
				MaterialBrick:    u(0, 0, 10, 0, 0),
				MaterialConcrete: u(0, 0, 0, 10, 0),
				MaterialSteel:    u(0, 0, 0, 0, 10),
			},
		},
		Harvest: HarvestSpec{
			StandardLimit:            decimal.NewFromInt(100),
			RareLimit:                decimal.NewFromInt(150),
			SlotPowerCost:            units(5, 2, 2, 2, 2),
			HarvesterDiscountPercent: 50,
		},
		Items: ItemSpec{
			Fireplace:          u(0, 0, 20, 0, 0),
			Harvester:          u(0, 0, 0, 0, 20),
			ConcreteFoundation: u(0, 0, 0, 0, 15),
			ToolshedSwitch:     u(5, 0, 0, 0, 0),
			FertilizeGarden:    u(0, 0, 5, 0, 0),
		},
		Fireplace: FireplaceSpec{BurnRatioPercent: 200},
		Firepit: FirepitSpec{
			MaxLumber:      decimal.NewFromInt(10),
			PowerPerLumber: decimal.NewFromInt(2),
		},
		Overdrive: OverdriveSpec{
			PowerCost:    decimal.NewFromInt(20),
			BoostPercent: 50,
			Duration:     shared.Day,
		},
		Gather: GatherSpec{
			DailyLimit:         2,
			PowerCostPerLumber: decimal.NewFromInt(5),
			Window:             24 * time.Hour,
		},
		LandToken: LandTokenSpec{
			PowerPerLandToken: decimal.NewFromInt(10),
			HandymanCost:      decimal.NewFromInt(10),
		},
		Minting:              MintingSpec{RareLimit: 10},
		SalvageRefundPercent: 25,
		SecondsPerYear:       31557600,
	}
}
