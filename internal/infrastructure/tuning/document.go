package tuning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

// amount decodes a YAML number or string into an exact decimal
type amount decimal.Decimal

func (a *amount) UnmarshalYAML(n *yaml.Node) error {
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q", n.Line, n.Value)
	}
	*a = amount(d)
	return nil
}

func (a amount) dec() decimal.Decimal { return decimal.Decimal(a) }

// duration decodes a Go duration string such as "168h"
type duration time.Duration

func (d *duration) UnmarshalYAML(n *yaml.Node) error {
	v, err := time.ParseDuration(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", n.Line, n.Value)
	}
	*d = duration(v)
	return nil
}

// bundle is keyed by lower-case resource kind; absent kinds are zero
type bundle map[string]amount

func (b bundle) toBundle() (resource.Bundle, error) {
	var out resource.Bundle
	for name, v := range b {
		kind, err := resource.ParseKind(name)
		if err != nil {
			return out, err
		}
		out[kind] = v.dec()
	}
	return out, nil
}

type percents map[string]int64

func (p percents) toArray() ([resource.Count]int64, error) {
	var out [resource.Count]int64
	for name, v := range p {
		kind, err := resource.ParseKind(name)
		if err != nil {
			return out, err
		}
		out[kind] = v
	}
	return out, nil
}

type facilityDoc struct {
	Rates        []amount `yaml:"rates"`
	UpgradeCosts []bundle `yaml:"upgrade_costs"` // into levels 2..5
}

type multiplierDoc struct {
	Standard amount `yaml:"standard"`
	Rare     amount `yaml:"rare"`
}

type addonDoc struct {
	ID                    int      `yaml:"id"`
	Name                  string   `yaml:"name"`
	Cost                  bundle   `yaml:"cost"`
	MultiplierPercent     int64    `yaml:"multiplier_percent"`
	Requires              []int    `yaml:"requires"`
	RequiresFortification string   `yaml:"requires_fortification"`
	Lifetime              duration `yaml:"lifetime"`
	GatherBonus           int      `yaml:"gather_bonus"`
	Fertilizable          bool     `yaml:"fertilizable"`
}

type toolshedDoc struct {
	ID                     int      `yaml:"id"`
	Name                   string   `yaml:"name"`
	Cost                   bundle   `yaml:"cost"`
	GenerationBonusPercent percents `yaml:"generation_bonus_percent"`
	RepairDiscountPercent  percents `yaml:"repair_discount_percent"`
}

type durabilityDoc struct {
	Initial                     amount `yaml:"initial"`
	Floor                       amount `yaml:"floor"`
	DecayPercent                int64  `yaml:"decay_percent"`
	FoundationDecayPercent      int64  `yaml:"foundation_decay_percent"`
	RepairMinBatch              amount `yaml:"repair_min_batch"`
	RepairCostPerPoint          bundle `yaml:"repair_cost_per_point"`
	RepairAddonSurchargePercent int64  `yaml:"repair_addon_surcharge_percent"`
}

type fortificationDoc struct {
	Boost  amount            `yaml:"boost"`
	Window duration          `yaml:"window"`
	Decay  string            `yaml:"decay"`
	Costs  map[string]bundle `yaml:"costs"`
}

type harvestDoc struct {
	StandardLimit            amount `yaml:"standard_limit"`
	RareLimit                amount `yaml:"rare_limit"`
	SlotPowerCost            bundle `yaml:"slot_power_cost"`
	HarvesterDiscountPercent int64  `yaml:"harvester_discount_percent"`
}

type itemsDoc struct {
	Fireplace          bundle `yaml:"fireplace"`
	Harvester          bundle `yaml:"harvester"`
	ConcreteFoundation bundle `yaml:"concrete_foundation"`
	ToolshedSwitch     bundle `yaml:"toolshed_switch"`
	FertilizeGarden    bundle `yaml:"fertilize_garden"`
}

type fireplaceDoc struct {
	BurnRatioPercent int64 `yaml:"burn_ratio_percent"`
}

type firepitDoc struct {
	MaxLumber      amount `yaml:"max_lumber"`
	PowerPerLumber amount `yaml:"power_per_lumber"`
}

type overdriveDoc struct {
	PowerCost    amount   `yaml:"power_cost"`
	BoostPercent int64    `yaml:"boost_percent"`
	Duration     duration `yaml:"duration"`
}

type gatherDoc struct {
	DailyLimit         int      `yaml:"daily_limit"`
	PowerCostPerLumber amount   `yaml:"power_cost_per_lumber"`
	Window             duration `yaml:"window"`
}

type landTokenDoc struct {
	PowerPerLandToken amount `yaml:"power_per_land_token"`
	HandymanCost      amount `yaml:"handyman_cost"`
}

type mintingDoc struct {
	RareLimit int `yaml:"rare_limit"`
}

// document is the YAML form of settings.Table. Sections left out keep the built-in values.
type document struct {
	Facilities    map[string]facilityDoc `yaml:"facilities"`
	PowerLimits   []amount               `yaml:"power_limits"`
	Multiplier    multiplierDoc          `yaml:"multiplier"`
	Addons        []addonDoc             `yaml:"addons"`
	Toolsheds     []toolshedDoc          `yaml:"toolsheds"`
	Durability    durabilityDoc          `yaml:"durability"`
	Fortification fortificationDoc       `yaml:"fortification"`
	Harvest       harvestDoc             `yaml:"harvest"`
	Items         itemsDoc               `yaml:"items"`

	Fireplace            *fireplaceDoc `yaml:"fireplace"`
	Firepit              *firepitDoc   `yaml:"firepit"`
	Overdrive            *overdriveDoc `yaml:"overdrive"`
	Gather               *gatherDoc    `yaml:"gather"`
	LandToken            *landTokenDoc `yaml:"land_token"`
	Minting              *mintingDoc   `yaml:"minting"`
	SalvageRefundPercent *int64        `yaml:"salvage_refund_percent"`
	SecondsPerYear       *int64        `yaml:"seconds_per_year"`
}

// table converts the document. Structural validity has already been checked against the
// schema, so the errors here are about names the schema cannot see.
func (d *document) table() (*settings.Table, error) {
	t := settings.Default()

	for i := 0; i < resource.Count; i++ {
		kind := resource.Kind(i)
		name := lower(kind.FacilityName())
		f, ok := d.Facilities[name]
		if !ok {
			return nil, fmt.Errorf("facilities: missing %s", name)
		}
		var spec settings.FacilitySpec
		for lvl, r := range f.Rates {
			spec.Rates[lvl] = r.dec()
		}
		for j, c := range f.UpgradeCosts {
			cost, err := c.toBundle()
			if err != nil {
				return nil, fmt.Errorf("facilities.%s.upgrade_costs[%d]: %w", name, j, err)
			}
			spec.UpgradeCosts[j+1] = cost
		}
		t.Facilities[kind] = spec
	}
	for i, v := range d.PowerLimits {
		t.PowerLimits[i] = v.dec()
	}
	t.Multiplier = settings.MultiplierSpec{Standard: d.Multiplier.Standard.dec(), Rare: d.Multiplier.Rare.dec()}

	t.Addons = make([]settings.AddonSpec, 0, len(d.Addons))
	for _, a := range d.Addons {
		cost, err := a.Cost.toBundle()
		if err != nil {
			return nil, fmt.Errorf("addon %d cost: %w", a.ID, err)
		}
		spec := settings.AddonSpec{
			ID:                settings.AddonID(a.ID),
			Name:              a.Name,
			Cost:              cost,
			MultiplierPercent: a.MultiplierPercent,
			Lifetime:          time.Duration(a.Lifetime),
			GatherBonus:       a.GatherBonus,
			Fertilizable:      a.Fertilizable,
		}
		for _, req := range a.Requires {
			spec.Requires = append(spec.Requires, settings.AddonID(req))
		}
		if a.RequiresFortification != "" {
			m, err := settings.ParseMaterial(a.RequiresFortification)
			if err != nil {
				return nil, fmt.Errorf("addon %d: %w", a.ID, err)
			}
			spec.RequiresFortification = &m
		}
		t.Addons = append(t.Addons, spec)
	}

	t.Toolsheds = make([]settings.ToolshedSpec, 0, len(d.Toolsheds))
	for _, s := range d.Toolsheds {
		cost, err := s.Cost.toBundle()
		if err != nil {
			return nil, fmt.Errorf("toolshed %d cost: %w", s.ID, err)
		}
		bonus, err := s.GenerationBonusPercent.toArray()
		if err != nil {
			return nil, fmt.Errorf("toolshed %d generation bonus: %w", s.ID, err)
		}
		discount, err := s.RepairDiscountPercent.toArray()
		if err != nil {
			return nil, fmt.Errorf("toolshed %d repair discount: %w", s.ID, err)
		}
		t.Toolsheds = append(t.Toolsheds, settings.ToolshedSpec{
			ID:                     settings.ToolshedID(s.ID),
			Name:                   s.Name,
			Cost:                   cost,
			GenerationBonusPercent: bonus,
			RepairDiscountPercent:  discount,
		})
	}

	repairCost, err := d.Durability.RepairCostPerPoint.toBundle()
	if err != nil {
		return nil, fmt.Errorf("durability.repair_cost_per_point: %w", err)
	}
	t.Durability = settings.DurabilitySpec{
		Initial:                     d.Durability.Initial.dec(),
		Floor:                       d.Durability.Floor.dec(),
		DecayPercent:                d.Durability.DecayPercent,
		FoundationDecayPercent:      d.Durability.FoundationDecayPercent,
		RepairMinBatch:              d.Durability.RepairMinBatch.dec(),
		RepairCostPerPoint:          repairCost,
		RepairAddonSurchargePercent: d.Durability.RepairAddonSurchargePercent,
	}

	t.Fortification.Boost = d.Fortification.Boost.dec()
	t.Fortification.Window = time.Duration(d.Fortification.Window)
	if d.Fortification.Decay != "" {
		t.Fortification.Decay = settings.BoostDecay(d.Fortification.Decay)
	}
	for name, c := range d.Fortification.Costs {
		m, err := settings.ParseMaterial(name)
		if err != nil {
			return nil, fmt.Errorf("fortification.costs: %w", err)
		}
		cost, err := c.toBundle()
		if err != nil {
			return nil, fmt.Errorf("fortification.costs.%s: %w", name, err)
		}
		t.Fortification.Costs[m] = cost
	}

	slots, err := d.Harvest.SlotPowerCost.toBundle()
	if err != nil {
		return nil, fmt.Errorf("harvest.slot_power_cost: %w", err)
	}
	t.Harvest = settings.HarvestSpec{
		StandardLimit:            d.Harvest.StandardLimit.dec(),
		RareLimit:                d.Harvest.RareLimit.dec(),
		SlotPowerCost:            slots,
		HarvesterDiscountPercent: d.Harvest.HarvesterDiscountPercent,
	}

	items := []struct {
		name string
		src  bundle
		dst  *resource.Bundle
	}{
		{"fireplace", d.Items.Fireplace, &t.Items.Fireplace},
		{"harvester", d.Items.Harvester, &t.Items.Harvester},
		{"concrete_foundation", d.Items.ConcreteFoundation, &t.Items.ConcreteFoundation},
		{"toolshed_switch", d.Items.ToolshedSwitch, &t.Items.ToolshedSwitch},
		{"fertilize_garden", d.Items.FertilizeGarden, &t.Items.FertilizeGarden},
	}
	for _, it := range items {
		if it.src == nil {
			continue
		}
		cost, err := it.src.toBundle()
		if err != nil {
			return nil, fmt.Errorf("items.%s: %w", it.name, err)
		}
		*it.dst = cost
	}

	if d.Fireplace != nil {
		t.Fireplace.BurnRatioPercent = d.Fireplace.BurnRatioPercent
	}
	if d.Firepit != nil {
		t.Firepit = settings.FirepitSpec{MaxLumber: d.Firepit.MaxLumber.dec(), PowerPerLumber: d.Firepit.PowerPerLumber.dec()}
	}
	if d.Overdrive != nil {
		t.Overdrive = settings.OverdriveSpec{
			PowerCost:    d.Overdrive.PowerCost.dec(),
			BoostPercent: d.Overdrive.BoostPercent,
			Duration:     time.Duration(d.Overdrive.Duration),
		}
	}
	if d.Gather != nil {
		t.Gather = settings.GatherSpec{
			DailyLimit:         d.Gather.DailyLimit,
			PowerCostPerLumber: d.Gather.PowerCostPerLumber.dec(),
			Window:             time.Duration(d.Gather.Window),
		}
	}
	if d.LandToken != nil {
		t.LandToken = settings.LandTokenSpec{
			PowerPerLandToken: d.LandToken.PowerPerLandToken.dec(),
			HandymanCost:      d.LandToken.HandymanCost.dec(),
		}
	}
	if d.Minting != nil {
		t.Minting.RareLimit = d.Minting.RareLimit
	}
	if d.SalvageRefundPercent != nil {
		t.SalvageRefundPercent = *d.SalvageRefundPercent
	}
	if d.SecondsPerYear != nil {
		t.SecondsPerYear = *d.SecondsPerYear
	}
	return t, nil
}
