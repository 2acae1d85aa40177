package house

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// addonActive reports whether an owned addon contributes at now: not expired, and its
// fortification requirement (if any) backed by an open boost.
func (h *House) addonActive(spec *settings.AddonSpec, now time.Time, t *settings.Table) bool {
	purchasedAt, owned := h.addons[spec.ID]
	if !owned {
		return false
	}
	if spec.Lifetime > 0 && !now.Before(purchasedAt.Add(spec.Lifetime)) {
		return false
	}
	if spec.RequiresFortification != nil && !h.BoostActive(*spec.RequiresFortification, now, t) {
		return false
	}
	return true
}

// addonExpired reports whether an owned, time-limited addon ran out.
func (h *House) addonExpired(spec *settings.AddonSpec, now time.Time) bool {
	purchasedAt, owned := h.addons[spec.ID]
	return owned && spec.Lifetime > 0 && !now.Before(purchasedAt.Add(spec.Lifetime))
}

// ActiveAddons returns the addons contributing at now, in ascending order.
func (h *House) ActiveAddons(now time.Time, t *settings.Table) []settings.AddonID {
	var out []settings.AddonID
	for _, id := range h.Addons() {
		spec, err := t.Addon(id)
		if err != nil {
			continue
		}
		if h.addonActive(spec, now, t) {
			out = append(out, id)
		}
	}
	return out
}

// Multiplier composes base(rarity) × Π(active addon percent / 100), truncating each step.
func (h *House) Multiplier(now time.Time, t *settings.Table) decimal.Decimal {
	m := t.BaseMultiplier(h.rare)
	for _, id := range h.ActiveAddons(now, t) {
		spec, _ := t.Addon(id)
		m = shared.Percent(m, spec.MultiplierPercent)
	}
	return m
}

// GatherLimit is the per-window lumber gather cap including active addon bonuses.
func (h *House) GatherLimit(now time.Time, t *settings.Table) int {
	limit := t.Gather.DailyLimit
	for _, id := range h.ActiveAddons(now, t) {
		spec, _ := t.Addon(id)
		limit += spec.GatherBonus
	}
	return limit
}
