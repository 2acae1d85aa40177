package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Account holds one owner's resource balances. Every change goes through Post, which
// refuses to drive any balance below zero and records an Entry.
type Account struct {
	owner     shared.Address
	balances  resource.Bundle
	updatedAt time.Time
}

// NewAccount opens an empty account
func NewAccount(owner shared.Address) *Account {
	return &Account{owner: owner}
}

// ReconstructAccount rebuilds an account from persistence
func ReconstructAccount(owner shared.Address, balances resource.Bundle, updatedAt time.Time) *Account {
	return &Account{owner: owner, balances: balances, updatedAt: updatedAt}
}

func (a *Account) Owner() shared.Address { return a.owner }
func (a *Account) Balances() resource.Bundle { return a.balances }
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }
func (a *Account) Balance(k resource.Kind) decimal.Decimal { return a.balances[k] }

// Post applies a signed delta and returns the entry recording it. A delta that would leave
// any balance negative is rejected and the account is unchanged.
func (a *Account) Post(
	now time.Time,
	entryType EntryType,
	houseID *int64,
	delta resource.Bundle,
	description string,
	metadata map[string]interface{},
) (*Entry, error) {
	entry, err := NewEntry(a.owner, houseID, now, entryType, delta, a.balances, description, metadata)
	if err != nil {
		return nil, err
	}
	a.balances = entry.BalanceAfter()
	a.updatedAt = now
	return entry, nil
}

// Debit posts a cost as a negative delta. A zero cost records nothing.
func (a *Account) Debit(now time.Time, entryType EntryType, houseID *int64, cost resource.Bundle, description string) (*Entry, error) {
	if cost.IsZero() {
		return nil, nil
	}
	var neg resource.Bundle
	for i := range cost {
		neg[i] = cost[i].Neg()
	}
	return a.Post(now, entryType, houseID, neg, description, nil)
}

// Credit posts a gain. A zero amount records nothing.
func (a *Account) Credit(now time.Time, entryType EntryType, houseID *int64, amount resource.Bundle, description string) (*Entry, error) {
	if amount.IsZero() {
		return nil, nil
	}
	return a.Post(now, entryType, houseID, amount, description, nil)
}

// CappedPowerCredit returns how much of power can be credited without pushing the balance
// over limit. A balance already above the limit is never reduced.
func (a *Account) CappedPowerCredit(power, limit decimal.Decimal) decimal.Decimal {
	current := a.balances[resource.Power]
	if !power.IsPositive() || current.GreaterThanOrEqual(limit) {
		return decimal.Zero
	}
	return decimal.Min(power, limit.Sub(current))
}
