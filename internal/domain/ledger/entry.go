package ledger

import (
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Entry is the audit record of one change to an owner's resource balances.
// Entries are immutable once created.
type Entry struct {
	id            EntryID
	owner         shared.Address
	houseID       *int64
	timestamp     time.Time
	entryType     EntryType
	category      Category
	delta         resource.Bundle // positive amounts credit, negative debit
	balanceBefore resource.Bundle
	balanceAfter  resource.Bundle
	description   string
	metadata      map[string]interface{}
}

// NewEntry creates a new entry with validation
func NewEntry(
	owner shared.Address,
	houseID *int64,
	timestamp time.Time,
	entryType EntryType,
	delta resource.Bundle,
	balanceBefore resource.Bundle,
	description string,
	metadata map[string]interface{},
) (*Entry, error) {
	if owner.IsZero() {
		return nil, &ErrInvalidEntry{Field: "owner", Reason: "owner cannot be empty"}
	}
	if !entryType.IsValid() {
		return nil, &ErrInvalidEntry{Field: "entry_type", Reason: fmt.Sprintf("invalid entry type: %s", entryType)}
	}
	category, err := entryType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidEntry{Field: "category", Reason: err.Error()}
	}

	e := &Entry{
		id:            NewEntryID(),
		owner:         owner,
		houseID:       houseID,
		timestamp:     timestamp,
		entryType:     entryType,
		category:      category,
		delta:         delta,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceBefore.Add(delta),
		description:   description,
		metadata:      metadata,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ReconstructEntry reconstructs an entry from persistence
func ReconstructEntry(
	id EntryID,
	owner shared.Address,
	houseID *int64,
	timestamp time.Time,
	entryType EntryType,
	category Category,
	delta resource.Bundle,
	balanceBefore resource.Bundle,
	balanceAfter resource.Bundle,
	description string,
	metadata map[string]interface{},
) *Entry {
	return &Entry{
		id:            id,
		owner:         owner,
		houseID:       houseID,
		timestamp:     timestamp,
		entryType:     entryType,
		category:      category,
		delta:         delta,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		description:   description,
		metadata:      metadata,
	}
}

// Validate checks that the entry satisfies all invariants
func (e *Entry) Validate() error {
	if e.delta.IsZero() {
		return &ErrInvalidEntry{Field: "delta", Reason: "delta cannot be zero"}
	}
	for _, k := range resource.AllKinds() {
		if !e.balanceBefore[k].Add(e.delta[k]).Equal(e.balanceAfter[k]) {
			return &ErrBalanceInvariantViolation{
				Kind:          k,
				BalanceBefore: e.balanceBefore[k],
				Delta:         e.delta[k],
				BalanceAfter:  e.balanceAfter[k],
			}
		}
		if e.balanceAfter[k].IsNegative() {
			return &ErrInsufficientResources{Kind: k, Required: e.delta[k].Neg(), Available: e.balanceBefore[k]}
		}
	}
	return nil
}

// Getters (all fields are immutable)

func (e *Entry) ID() EntryID {
	return e.id
}

func (e *Entry) Owner() shared.Address {
	return e.owner
}

// HouseID returns the house the entry is attributed to, if any.
func (e *Entry) HouseID() (int64, bool) {
	if e.houseID == nil {
		return 0, false
	}
	return *e.houseID, true
}

func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}

func (e *Entry) EntryType() EntryType {
	return e.entryType
}

func (e *Entry) Category() Category {
	return e.category
}

func (e *Entry) Delta() resource.Bundle {
	return e.delta
}

func (e *Entry) BalanceBefore() resource.Bundle {
	return e.balanceBefore
}

func (e *Entry) BalanceAfter() resource.Bundle {
	return e.balanceAfter
}

func (e *Entry) Description() string {
	return e.description
}

func (e *Entry) Metadata() map[string]interface{} {
	if e.metadata == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(e.metadata))
	for k, v := range e.metadata {
		copied[k] = v
	}
	return copied
}

// String provides a human-readable representation
func (e *Entry) String() string {
	return fmt.Sprintf("Entry[%s, type=%s, delta=%s]", e.id.String(), e.entryType, e.delta.String())
}
