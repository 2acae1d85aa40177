package token

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Kind names one of the two fungible tokens an owner holds
type Kind string

const (
	// LandToken is the reward and payment token
	LandToken Kind = "LAND"
	// AssetToken is the token staked against houses
	AssetToken Kind = "ASSET"
)

// ParseKind parses a token kind name (case sensitive, as stored)
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case LandToken, AssetToken:
		return Kind(s), nil
	}
	return "", fmt.Errorf("invalid token kind: %s", s)
}

// Wallet holds an owner's token balances.
type Wallet struct {
	owner     shared.Address
	land      decimal.Decimal
	asset     decimal.Decimal
	updatedAt time.Time
}

// NewWallet opens an empty wallet
func NewWallet(owner shared.Address) *Wallet {
	return &Wallet{owner: owner}
}

// ReconstructWallet rebuilds a wallet from persistence
func ReconstructWallet(owner shared.Address, land, asset decimal.Decimal, updatedAt time.Time) *Wallet {
	return &Wallet{owner: owner, land: land, asset: asset, updatedAt: updatedAt}
}

func (w *Wallet) Owner() shared.Address { return w.owner }
func (w *Wallet) UpdatedAt() time.Time { return w.updatedAt }

// Balance returns the balance of one token kind
func (w *Wallet) Balance(kind Kind) decimal.Decimal {
	if kind == AssetToken {
		return w.asset
	}
	return w.land
}

// Credit adds tokens
func (w *Wallet) Credit(kind Kind, amount decimal.Decimal, now time.Time) error {
	if amount.IsNegative() {
		return shared.Errorf(shared.KindInvalidArgument, "token amount cannot be negative")
	}
	w.set(kind, w.Balance(kind).Add(amount))
	w.updatedAt = now
	return nil
}

// Debit removes tokens, rejecting overdraws
func (w *Wallet) Debit(kind Kind, amount decimal.Decimal, now time.Time) error {
	if amount.IsNegative() {
		return shared.Errorf(shared.KindInvalidArgument, "token amount cannot be negative")
	}
	balance := w.Balance(kind)
	if balance.LessThan(amount) {
		return shared.Errorf(shared.KindInsufficient, "insufficient %s token: required %s, available %s",
			kindLabel(kind), amount, balance)
	}
	w.set(kind, balance.Sub(amount))
	w.updatedAt = now
	return nil
}

func (w *Wallet) set(kind Kind, v decimal.Decimal) {
	if kind == AssetToken {
		w.asset = v
		return
	}
	w.land = v
}

func kindLabel(k Kind) string {
	if k == AssetToken {
		return "asset"
	}
	return "land"
}

// Repository defines persistence operations for wallets
type Repository interface {
	// Load returns the owner's wallet, or an empty one
	Load(ctx context.Context, owner shared.Address) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
}
