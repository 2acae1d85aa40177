package house

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// accrueToken adds stake × multiplier × durability × elapsed / year / 100 to the pending
// token reward, capped so that lifetime + pending never exceeds the harvest limit.
func (h *House) accrueToken(now time.Time, t *settings.Table, staked decimal.Decimal) decimal.Decimal {
	elapsed := shared.ElapsedSeconds(h.tokenAt, now)
	if elapsed == 0 {
		return decimal.Zero
	}
	h.tokenAt = now
	if !staked.IsPositive() {
		return decimal.Zero
	}

	numerator := staked.
		Mul(h.Multiplier(now, t)).
		Mul(h.Durability(now, t)).
		Mul(decimal.NewFromInt(elapsed))
	denominator := decimal.NewFromInt(t.SecondsPerYear).Mul(shared.Hundred())
	reward := shared.Quo(numerator, denominator)

	room := t.HarvestLimit(h.rare).Sub(h.lifetime).Sub(h.tokenPending)
	if !room.IsPositive() {
		return decimal.Zero
	}
	if reward.GreaterThan(room) {
		reward = room
	}
	h.tokenPending = h.tokenPending.Add(reward)
	return reward
}

// HarvestLimitReached reports whether the lifetime total has hit the cap.
func (h *House) HarvestLimitReached(t *settings.Table) bool {
	return h.lifetime.GreaterThanOrEqual(t.HarvestLimit(h.rare))
}

// HarvestCost is the power charged for the selected slots, discounted by a harvester.
func (h *House) HarvestCost(sel resource.Selector, t *settings.Table) resource.Bundle {
	power := decimal.Zero
	for i, picked := range sel {
		if picked {
			power = power.Add(t.Harvest.SlotPowerCost[i])
		}
	}
	if h.harvester {
		power = shared.Percent(power, 100-t.Harvest.HarvesterDiscountPercent)
	}
	return resource.Of(resource.Power, power)
}

// HarvestResult is what a harvest moves out of the house.
type HarvestResult struct {
	Resources resource.Bundle
	Token     decimal.Decimal
	Cost      resource.Bundle
	Died      bool
}

// Harvest claims the selected pending rewards. Slot 0 claims the token reward into the
// lifetime total; reaching the cap kills the house at now.
func (h *House) Harvest(sel resource.Selector, now time.Time, t *settings.Table) (HarvestResult, error) {
	var res HarvestResult
	if err := h.EnsureOperable(); err != nil {
		return res, err
	}
	if !sel.Any() {
		return res, invalid("no harvest slot selected")
	}
	res.Cost = h.HarvestCost(sel, t)
	res.Token = decimal.Zero

	for _, kind := range sel.Kinds() {
		res.Resources[kind] = h.reward[kind]
		h.reward[kind] = decimal.Zero
	}

	if sel[resource.SlotTokenReward] {
		res.Token = h.tokenPending
		h.lifetime = h.lifetime.Add(h.tokenPending)
		h.tokenPending = decimal.Zero
		if h.HarvestLimitReached(t) {
			h.dead = true
			h.deadAt = now
			res.Died = true
		}
	}
	return res, nil
}
