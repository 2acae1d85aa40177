package ledger

import (
	"context"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// AccountRepository defines persistence operations for resource accounts
type AccountRepository interface {
	// Load returns the owner's account, or an empty one if the owner never held resources
	Load(ctx context.Context, owner shared.Address) (*Account, error)

	Save(ctx context.Context, account *Account) error
}

// EntryRepository defines persistence operations for ledger entries
type EntryRepository interface {
	// Create persists a new entry
	Create(ctx context.Context, entry *Entry) error

	// FindByID retrieves an entry by its ID
	FindByID(ctx context.Context, id EntryID, owner shared.Address) (*Entry, error)

	// FindByOwner retrieves entries for an owner with optional filtering
	FindByOwner(ctx context.Context, owner shared.Address, opts QueryOptions) ([]*Entry, error)

	// CountByOwner returns the count of entries matching the criteria
	CountByOwner(ctx context.Context, owner shared.Address, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for entry queries
type QueryOptions struct {
	// Date range filtering
	StartDate *time.Time
	EndDate   *time.Time

	Category  *Category
	EntryType *EntryType
	HouseID   *int64

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy string // "timestamp ASC" or "timestamp DESC" (default DESC)
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "timestamp DESC",
	}
}
