package house

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// The operation methods below assume the house was settled at now. Each returns the cost
// the caller must debit from the owner; an error leaves the caller to discard the record.

// UpgradeFacility raises one facility by a level.
func (h *House) UpgradeFacility(kind resource.Kind, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if !kind.IsValid() {
		return resource.Bundle{}, invalid("invalid facility type")
	}
	if h.levels[kind] >= settings.MaxLevel {
		return resource.Bundle{}, bounds("%s is already at max level", kind.FacilityName())
	}
	cost, err := t.UpgradeCost(kind, h.levels[kind]+1)
	if err != nil {
		return resource.Bundle{}, err
	}
	h.levels[kind]++
	h.lastRewardAt[kind] = now
	return cost, nil
}

// BuyAddon records an addon purchase at now. An expired addon can be bought again.
func (h *House) BuyAddon(id settings.AddonID, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	spec, err := t.Addon(id)
	if err != nil {
		return resource.Bundle{}, err
	}
	if h.OwnsAddon(id) && !h.addonExpired(spec, now) {
		return resource.Bundle{}, conflict("addon %s already owned", spec.Name)
	}
	for _, req := range spec.Requires {
		reqSpec, err := t.Addon(req)
		if err != nil {
			return resource.Bundle{}, err
		}
		if !h.OwnsAddon(req) || h.addonExpired(reqSpec, now) {
			return resource.Bundle{}, dependency("addon %s requires %s", spec.Name, reqSpec.Name)
		}
	}
	if m := spec.RequiresFortification; m != nil && !h.BoostActive(*m, now, t) {
		return resource.Bundle{}, dependency("addon %s requires %s fortification", spec.Name, m.String())
	}
	h.addons[id] = now
	return spec.Cost, nil
}

// SalvageAddon removes an addon and every addon depending on it, directly or transitively.
// Only the named addon is refunded. Dead houses may still salvage.
func (h *House) SalvageAddon(id settings.AddonID, t *settings.Table) (resource.Bundle, []settings.AddonID, error) {
	if !h.activated {
		return resource.Bundle{}, nil, errNotActivated
	}
	spec, err := t.Addon(id)
	if err != nil {
		return resource.Bundle{}, nil, err
	}
	if !h.OwnsAddon(id) {
		return resource.Bundle{}, nil, conflict("addon %s not owned", spec.Name)
	}

	delete(h.addons, id)
	var cascaded []settings.AddonID
	for _, dep := range t.TransitiveDependents(id) {
		if h.OwnsAddon(dep) {
			delete(h.addons, dep)
			cascaded = append(cascaded, dep)
		}
	}
	return spec.Cost.Percent(t.SalvageRefundPercent), cascaded, nil
}

// FertilizeGarden restarts the expiry window of every active fertilizable addon.
func (h *House) FertilizeGarden(now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	fertilized := false
	for _, id := range h.ActiveAddons(now, t) {
		spec, _ := t.Addon(id)
		if spec.Fertilizable {
			h.addons[id] = now
			fertilized = true
		}
	}
	if !fertilized {
		return resource.Bundle{}, dependency("no active garden to fertilize")
	}
	return t.Items.FertilizeGarden, nil
}

// BuyToolshed adds a toolshed type. It becomes active only when no other toolshed is.
func (h *House) BuyToolshed(id settings.ToolshedID, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	spec, err := t.Toolshed(id)
	if err != nil {
		return resource.Bundle{}, err
	}
	if h.toolsheds.Has(id) {
		return resource.Bundle{}, conflict("toolshed %s already owned", spec.Name)
	}
	h.toolsheds.Put(id)
	if h.activeToolshed == 0 {
		h.activeToolshed = id
	}
	return spec.Cost, nil
}

// SwitchToolshed moves the active slot from one owned toolshed to another.
func (h *House) SwitchToolshed(from, to settings.ToolshedID, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if _, err := t.Toolshed(from); err != nil {
		return resource.Bundle{}, err
	}
	toSpec, err := t.Toolshed(to)
	if err != nil {
		return resource.Bundle{}, err
	}
	if from == to {
		return resource.Bundle{}, invalid("cannot switch toolshed to itself")
	}
	if h.activeToolshed != from {
		return resource.Bundle{}, conflict("toolshed %d is not active", from)
	}
	if !h.toolsheds.Has(to) {
		return resource.Bundle{}, conflict("toolshed %s not owned", toSpec.Name)
	}
	h.activeToolshed = to
	return t.Items.ToolshedSwitch, nil
}

// BuyFireplace unlocks burning lumber into power.
func (h *House) BuyFireplace(t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if h.fireplace {
		return resource.Bundle{}, conflict("fireplace already owned")
	}
	h.fireplace = true
	return t.Items.Fireplace, nil
}

// BuyHarvester lowers the harvest cost from now on.
func (h *House) BuyHarvester(t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if h.harvester {
		return resource.Bundle{}, conflict("harvester already owned")
	}
	h.harvester = true
	return t.Items.Harvester, nil
}

// BuyConcreteFoundation lowers the decay rate. Decay up to now is written back first so the
// lower rate only applies forward.
func (h *House) BuyConcreteFoundation(now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if h.foundation {
		return resource.Bundle{}, conflict("concrete foundation already owned")
	}
	h.materializeDurability(now, t)
	h.foundation = true
	return t.Items.ConcreteFoundation, nil
}

// BurnLumber converts lumber into power at the fireplace ratio. It returns the lumber cost
// and the power produced; the power limit is checked by the caller.
func (h *House) BurnLumber(amount decimal.Decimal, t *settings.Table) (resource.Bundle, decimal.Decimal, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, decimal.Zero, err
	}
	if !h.fireplace {
		return resource.Bundle{}, decimal.Zero, dependency("fireplace required")
	}
	if !amount.IsPositive() {
		return resource.Bundle{}, decimal.Zero, invalid("lumber amount must be positive")
	}
	return resource.Of(resource.Lumber, amount), shared.Percent(amount, t.Fireplace.BurnRatioPercent), nil
}

// FrontLoadFirepit stocks lumber that burns on its own, one unit per full day.
func (h *House) FrontLoadFirepit(amount decimal.Decimal, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if !amount.IsPositive() {
		return resource.Bundle{}, invalid("lumber amount must be positive")
	}
	if h.firepitLumber.Add(amount).GreaterThan(t.Firepit.MaxLumber) {
		return resource.Bundle{}, bounds("exceed firepit lumber limit of %s", t.Firepit.MaxLumber)
	}
	if !h.firepitLumber.IsPositive() {
		h.firepitAt = now
	}
	h.firepitLumber = h.firepitLumber.Add(amount)
	return resource.Of(resource.Lumber, amount), nil
}

// BuyOverdrive boosts a non-power facility for the configured duration.
func (h *House) BuyOverdrive(kind resource.Kind, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if !kind.IsValid() || kind == resource.Power {
		return resource.Bundle{}, invalid("invalid overdrive type")
	}
	if now.Before(h.overdriveUntil[kind]) {
		return resource.Bundle{}, conflict("%s overdrive already active", kind.FacilityName())
	}
	h.overdriveUntil[kind] = now.Add(t.Overdrive.Duration)
	return resource.Of(resource.Power, t.Overdrive.PowerCost), nil
}

// GatherLumber trades power for lumber, limited per rolling window. The window opens at the
// first gather after the previous one closed.
func (h *House) GatherLumber(amount int, now time.Time, t *settings.Table) (cost, gained resource.Bundle, err error) {
	if err := h.EnsureOperable(); err != nil {
		return cost, gained, err
	}
	limit := h.GatherLimit(now, t)
	if amount < 1 || amount > limit {
		return cost, gained, invalid("invalid amount to gather: must be between 1 and %d", limit)
	}
	if h.gatherWindowStart.IsZero() || !now.Before(h.gatherWindowStart.Add(t.Gather.Window)) {
		h.gatherWindowStart = now
		h.gathered = 0
	}
	if h.gathered+amount > limit {
		return cost, gained, bounds("exceed gather limit of %d", limit)
	}
	h.gathered += amount
	lumber := decimal.NewFromInt(int64(amount))
	cost = resource.Of(resource.Power, lumber.Mul(t.Gather.PowerCostPerLumber))
	gained = resource.Of(resource.Lumber, lumber)
	return cost, gained, nil
}

// GatheredInWindow returns how much lumber was gathered in the window open at now.
func (h *House) GatheredInWindow(now time.Time, t *settings.Table) int {
	if h.gatherWindowStart.IsZero() || !now.Before(h.gatherWindowStart.Add(t.Gather.Window)) {
		return 0
	}
	return h.gathered
}

// Fortify applies a boost of one material. Refortifying with a material replaces its boost,
// so max durability is capped at baseline + one boost per material.
func (h *House) Fortify(m settings.Material, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	cost, err := t.FortificationCost(m)
	if err != nil {
		return resource.Bundle{}, err
	}
	h.materializeDurability(now, t)
	h.boosts[m] = &Boost{AppliedAt: now, Magnitude: t.Fortification.Boost}
	raised := h.durability.Add(t.Fortification.Boost)
	if ceiling := h.MaxDurability(now, t); raised.GreaterThan(ceiling) {
		raised = ceiling
	}
	h.durability = raised
	return cost, nil
}

// RepairCost is the per-point cost times amount, raised by a surcharge per owned addon and
// lowered per kind by the active toolshed.
func (h *House) RepairCost(amount decimal.Decimal, t *settings.Table) resource.Bundle {
	cost := t.Durability.RepairCostPerPoint.Mul(amount)
	surcharge := t.Durability.RepairAddonSurchargePercent * int64(len(h.addons))
	cost = cost.Percent(100 + surcharge)
	if h.activeToolshed == 0 {
		return cost
	}
	spec, err := t.Toolshed(h.activeToolshed)
	if err != nil {
		return cost
	}
	for i := range cost {
		if d := spec.RepairDiscountPercent[i]; d > 0 {
			cost[i] = shared.Percent(cost[i], 100-d)
		}
	}
	return cost
}

// Repair raises durability by amount. The max-durability headroom is checked before the
// minimum batch.
func (h *House) Repair(amount decimal.Decimal, now time.Time, t *settings.Table) (resource.Bundle, error) {
	if err := h.EnsureOperable(); err != nil {
		return resource.Bundle{}, err
	}
	if !amount.IsPositive() {
		return resource.Bundle{}, invalid("repair amount must be positive")
	}
	h.materializeDurability(now, t)
	if h.durability.Add(amount).GreaterThan(h.MaxDurability(now, t)) {
		return resource.Bundle{}, bounds("exceed max durability")
	}
	if amount.LessThan(t.Durability.RepairMinBatch) {
		return resource.Bundle{}, bounds("repair amount below minimum of %s", t.Durability.RepairMinBatch)
	}
	cost := h.RepairCost(amount, t)
	h.durability = h.durability.Add(amount)
	return cost, nil
}

// HireHandyman restores durability to max, once per house. It returns the land-token price.
func (h *House) HireHandyman(now time.Time, t *settings.Table) (decimal.Decimal, error) {
	if err := h.EnsureOperable(); err != nil {
		return decimal.Zero, err
	}
	if h.handymanUsed {
		return decimal.Zero, conflict("handyman already hired")
	}
	h.materializeDurability(now, t)
	h.durability = h.MaxDurability(now, t)
	h.handymanUsed = true
	return t.LandToken.HandymanCost, nil
}
