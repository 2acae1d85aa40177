package settings

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// Validate checks the semantic invariants of a table. Structural checks (types, required
// fields) happen when the document is loaded.
func (t *Table) Validate() error {
	var errs []error

	for k := range t.Facilities {
		for lvl, rate := range t.Facilities[k].Rates {
			if rate.IsNegative() {
				errs = append(errs, fmt.Errorf("facility %s level %d: negative rate", resource.Kind(k).FacilityName(), lvl+1))
			}
		}
		for lvl := 1; lvl < MaxLevel; lvl++ {
			if t.Facilities[k].UpgradeCosts[lvl].HasNegative() {
				errs = append(errs, fmt.Errorf("facility %s level %d: negative upgrade cost", resource.Kind(k).FacilityName(), lvl+1))
			}
		}
	}

	for i := 1; i < MaxLevel; i++ {
		if t.PowerLimits[i].LessThan(t.PowerLimits[i-1]) {
			errs = append(errs, fmt.Errorf("power limit for level %d is below level %d", i+1, i))
		}
	}

	seenAddons := make(map[AddonID]bool, len(t.Addons))
	for _, a := range t.Addons {
		if a.ID <= 0 {
			errs = append(errs, fmt.Errorf("addon %q: id must be positive", a.Name))
		}
		if seenAddons[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate addon id %d", a.ID))
		}
		seenAddons[a.ID] = true
		if a.MultiplierPercent <= 0 {
			errs = append(errs, fmt.Errorf("addon %d: multiplier percent must be positive", a.ID))
		}
		if a.RequiresFortification != nil && !a.RequiresFortification.IsValid() {
			errs = append(errs, fmt.Errorf("addon %d: invalid fortification requirement", a.ID))
		}
		if a.Cost.HasNegative() {
			errs = append(errs, fmt.Errorf("addon %d: negative cost", a.ID))
		}
	}
	if err := t.checkAcyclic(); err != nil {
		errs = append(errs, err)
	}

	seenSheds := make(map[ToolshedID]bool, len(t.Toolsheds))
	for _, s := range t.Toolsheds {
		if s.ID <= 0 {
			errs = append(errs, fmt.Errorf("toolshed %q: id must be positive", s.Name))
		}
		if seenSheds[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate toolshed id %d", s.ID))
		}
		seenSheds[s.ID] = true
		for k, pct := range s.RepairDiscountPercent {
			if pct < 0 || pct > 100 {
				errs = append(errs, fmt.Errorf("toolshed %d: repair discount for %s out of range", s.ID, resource.Kind(k)))
			}
		}
	}

	d := t.Durability
	if d.DecayPercent < 0 || d.DecayPercent >= 100 || d.FoundationDecayPercent < 0 || d.FoundationDecayPercent > d.DecayPercent {
		errs = append(errs, errors.New("durability decay percents must satisfy 0 <= foundation <= decay < 100"))
	}
	if d.Floor.IsNegative() || d.Floor.GreaterThan(d.Initial) {
		errs = append(errs, errors.New("durability floor must be between 0 and the initial durability"))
	}
	if !d.RepairMinBatch.IsPositive() {
		errs = append(errs, errors.New("repair minimum batch must be positive"))
	}

	f := t.Fortification
	if f.Window <= 0 {
		errs = append(errs, errors.New("fortification window must be positive"))
	}
	if f.Decay != BoostDecayStep && f.Decay != BoostDecayLinear {
		errs = append(errs, fmt.Errorf("unknown fortification decay mode %q", f.Decay))
	}

	if t.Harvest.HarvesterDiscountPercent < 0 || t.Harvest.HarvesterDiscountPercent > 100 {
		errs = append(errs, errors.New("harvester discount must be within 0..100"))
	}
	if t.Gather.DailyLimit < 1 || t.Gather.Window <= 0 {
		errs = append(errs, errors.New("gather limit and window must be positive"))
	}
	if t.Overdrive.Duration <= 0 {
		errs = append(errs, errors.New("overdrive duration must be positive"))
	}
	if t.SalvageRefundPercent < 0 || t.SalvageRefundPercent > 100 {
		errs = append(errs, errors.New("salvage refund must be within 0..100"))
	}
	if t.SecondsPerYear <= 0 {
		errs = append(errs, errors.New("seconds per year must be positive"))
	}

	return errors.Join(errs...)
}
