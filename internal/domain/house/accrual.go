package house

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

var secondsPerDay = decimal.NewFromInt(shared.SecondsPerDay)

// Settlement is what settling a house produced outside its own record.
type Settlement struct {
	// Power is windfarm output plus firepit burn, owed to the owner's power balance.
	Power decimal.Decimal
	// FirepitBurned is the lumber the firepit consumed.
	FirepitBurned decimal.Decimal
	// Token is the token reward added to the pending amount.
	Token decimal.Decimal
}

// Settle folds everything that happened between the stored checkpoints and now into the
// record: facility production, firepit burn and token reward. Settling twice at the same
// instant is a no-op. Durability is not touched here; it is derived on read and only written
// back by the operations that change it.
func (h *House) Settle(now time.Time, t *settings.Table, staked decimal.Decimal) Settlement {
	s := Settlement{Power: decimal.Zero, FirepitBurned: decimal.Zero, Token: decimal.Zero}
	if !h.activated {
		return s
	}
	if h.dead {
		h.advanceCheckpoints(now)
		return s
	}

	bonus := h.generationBonus(t)
	for _, kind := range resource.AllKinds() {
		delta := h.produced(kind, now, t, bonus[kind])
		if kind == resource.Power {
			s.Power = s.Power.Add(delta)
		} else {
			h.reward[kind] = h.reward[kind].Add(delta)
		}
		if now.After(h.lastRewardAt[kind]) {
			h.lastRewardAt[kind] = now
		}
	}

	burned := h.burnFirepit(now)
	s.FirepitBurned = burned
	s.Power = s.Power.Add(shared.Trunc(burned.Mul(t.Firepit.PowerPerLumber)))

	s.Token = h.accrueToken(now, t, staked)
	return s
}

// Project settles a copy of the house at now, leaving the receiver untouched.
func (h *House) Project(now time.Time, t *settings.Table, staked decimal.Decimal) (*House, Settlement) {
	c := h.Clone()
	s := c.Settle(now, t, staked)
	return c, s
}

func (h *House) advanceCheckpoints(now time.Time) {
	for i := range h.lastRewardAt {
		if now.After(h.lastRewardAt[i]) {
			h.lastRewardAt[i] = now
		}
	}
	if now.After(h.tokenAt) {
		h.tokenAt = now
	}
}

func (h *House) generationBonus(t *settings.Table) [resource.Count]int64 {
	if h.activeToolshed == 0 {
		return [resource.Count]int64{}
	}
	spec, err := t.Toolshed(h.activeToolshed)
	if err != nil {
		return [resource.Count]int64{}
	}
	return spec.GenerationBonusPercent
}

// produced is rate × elapsed / day for one facility, with the overdrive boost applied to the
// part of the interval before the overdrive expired.
func (h *House) produced(kind resource.Kind, now time.Time, t *settings.Table, bonus int64) decimal.Decimal {
	last := h.lastRewardAt[kind]
	total := shared.ElapsedSeconds(last, now)
	if total == 0 {
		return decimal.Zero
	}
	rate := shared.Percent(t.GenerationRate(kind, h.levels[kind]), 100+bonus)

	var boosted int64
	if until := h.overdriveUntil[kind]; until.After(last) {
		end := now
		if until.Before(now) {
			end = until
		}
		boosted = shared.ElapsedSeconds(last, end)
	}
	normal := total - boosted

	amount := rate.Mul(decimal.NewFromInt(normal))
	if boosted > 0 {
		boostedRate := shared.Percent(rate, 100+t.Overdrive.BoostPercent)
		amount = amount.Add(boostedRate.Mul(decimal.NewFromInt(boosted)))
	}
	return shared.Quo(amount, secondsPerDay)
}

// burnFirepit consumes one lumber per full day since the firepit checkpoint.
func (h *House) burnFirepit(now time.Time) decimal.Decimal {
	if !h.firepitLumber.IsPositive() {
		h.firepitLumber = decimal.Zero
		if now.After(h.firepitAt) {
			h.firepitAt = now
		}
		return decimal.Zero
	}
	days := shared.FullDays(h.firepitAt, now)
	if days == 0 {
		return decimal.Zero
	}
	burned := decimal.Min(decimal.NewFromInt(days), h.firepitLumber)
	h.firepitLumber = h.firepitLumber.Sub(burned)
	if h.firepitLumber.IsPositive() {
		h.firepitAt = h.firepitAt.Add(time.Duration(days) * shared.Day)
	} else {
		h.firepitLumber = decimal.Zero
		h.firepitAt = now
	}
	return burned
}

// FirepitRemainDays is how many more full days the stocked lumber keeps burning.
func (h *House) FirepitRemainDays() int64 {
	return h.firepitLumber.Ceil().IntPart()
}
