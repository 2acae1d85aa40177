package stake

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Position is the amount of asset token staked against one house. The staked amount feeds
// the house's token reward and locks the house against transfer while non-zero.
type Position struct {
	houseID   int64
	amount    decimal.Decimal
	updatedAt time.Time
}

// NewPosition opens an empty position for a house
func NewPosition(houseID int64) *Position {
	return &Position{houseID: houseID}
}

// ReconstructPosition rebuilds a position from persistence
func ReconstructPosition(houseID int64, amount decimal.Decimal, updatedAt time.Time) *Position {
	return &Position{houseID: houseID, amount: amount, updatedAt: updatedAt}
}

func (p *Position) HouseID() int64 { return p.houseID }
func (p *Position) Amount() decimal.Decimal { return p.amount }
func (p *Position) UpdatedAt() time.Time { return p.updatedAt }

// IsStaked reports whether anything is deposited
func (p *Position) IsStaked() bool {
	return p.amount.IsPositive()
}

// Deposit adds to the position
func (p *Position) Deposit(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.KindInvalidArgument, "no deposit")
	}
	p.amount = p.amount.Add(amount)
	p.updatedAt = now
	return nil
}

// Withdraw removes from the position
func (p *Position) Withdraw(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.KindInvalidArgument, "no withdraw")
	}
	if amount.GreaterThan(p.amount) {
		return shared.NewDomainError(shared.KindBounds, "withdraw more than balance")
	}
	p.amount = p.amount.Sub(amount)
	p.updatedAt = now
	return nil
}

// Repository defines persistence operations for stake positions
type Repository interface {
	// Find returns the house's position, or an empty one
	Find(ctx context.Context, houseID int64) (*Position, error)
	Save(ctx context.Context, p *Position) error
}
