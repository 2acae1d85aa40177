package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ErrInvalidEntry represents validation errors for ledger entries
type ErrInvalidEntry struct {
	Field  string
	Reason string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid entry: %s - %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation represents errors when balance calculations don't match
type ErrBalanceInvariantViolation struct {
	Kind          resource.Kind
	BalanceBefore decimal.Decimal
	Delta         decimal.Decimal
	BalanceAfter  decimal.Decimal
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("balance invariant violated for %s: balance_before=%s + delta=%s should equal balance_after=%s",
		e.Kind, e.BalanceBefore, e.Delta, e.BalanceAfter)
}

// ErrEntryNotFound represents errors when an entry cannot be found
type ErrEntryNotFound struct {
	ID    string
	Owner string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("entry not found: id=%s, owner=%s", e.ID, e.Owner)
}

// ErrInsufficientResources rejects a debit larger than the balance
type ErrInsufficientResources struct {
	Kind      resource.Kind
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrInsufficientResources) Error() string {
	return fmt.Sprintf("insufficient %s: required %s, available %s",
		strings.ToLower(e.Kind.String()), e.Required.String(), e.Available.String())
}

// Unwrap exposes the insufficient kind to shared.IsKind.
func (e *ErrInsufficientResources) Unwrap() error {
	return shared.NewDomainError(shared.KindInsufficient, e.Error())
}
