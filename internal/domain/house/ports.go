package house

import (
	"context"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Repository defines persistence operations for houses
type Repository interface {
	FindByID(ctx context.Context, id ID) (*House, error)
	FindByOwner(ctx context.Context, owner shared.Address) ([]*House, error)
	Save(ctx context.Context, h *House) error
	// NextID returns the id the next minted house receives.
	NextID(ctx context.Context) (ID, error)
	CountRare(ctx context.Context) (int, error)
}
