package house

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// BoostActive reports whether the material's fortification window is still open at now.
func (h *House) BoostActive(m settings.Material, now time.Time, t *settings.Table) bool {
	if !m.IsValid() || h.boosts[m] == nil {
		return false
	}
	return now.Before(h.boosts[m].AppliedAt.Add(t.Fortification.Window))
}

// boostContribution is what one boost adds to max durability at now.
func boostContribution(b *Boost, now time.Time, spec settings.FortificationSpec) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	end := b.AppliedAt.Add(spec.Window)
	if !now.Before(end) {
		return decimal.Zero
	}
	if spec.Decay != settings.BoostDecayLinear {
		return b.Magnitude
	}
	remaining := decimal.NewFromInt(shared.ElapsedSeconds(now, end))
	window := decimal.NewFromInt(int64(spec.Window / time.Second))
	return shared.Quo(b.Magnitude.Mul(remaining), window)
}

// MaxDurability is the baseline raised by every fortification still contributing at now.
func (h *House) MaxDurability(now time.Time, t *settings.Table) decimal.Decimal {
	total := t.Durability.Initial
	for _, b := range h.boosts {
		total = total.Add(boostContribution(b, now, t.Fortification))
	}
	return total
}

// Durability is the stored value decayed by one step per full day since its checkpoint,
// never below the floor and never above the current max.
func (h *House) Durability(now time.Time, t *settings.Table) decimal.Decimal {
	d := h.decayedDurability(now, t)
	if ceiling := h.MaxDurability(now, t); d.GreaterThan(ceiling) {
		return ceiling
	}
	return d
}

func (h *House) decayedDurability(now time.Time, t *settings.Table) decimal.Decimal {
	if !h.activated {
		return h.durability
	}
	days := shared.FullDays(h.durabilityAt, now)
	return decay(h.durability, days, t.DecayPercent(h.foundation), t.Durability.Floor)
}

// decay applies days compounding steps of (100-pct)/100, stopping at floor. A value already
// under the floor is left alone.
func decay(value decimal.Decimal, days, pct int64, floor decimal.Decimal) decimal.Decimal {
	if pct <= 0 || !value.GreaterThan(floor) {
		return value
	}
	keep := 100 - pct
	for i := int64(0); i < days; i++ {
		value = shared.Percent(value, keep)
		if !value.GreaterThan(floor) {
			return floor
		}
	}
	return value
}

// materializeDurability writes the current durability back and restarts the decay clock at now.
func (h *House) materializeDurability(now time.Time, t *settings.Table) {
	h.durability = h.Durability(now, t)
	h.durabilityAt = now
}
