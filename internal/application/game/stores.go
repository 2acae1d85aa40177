package game

import (
	"context"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/stake"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// Stores is the set of repositories one operation works against. Every repository in a
// Stores value shares the same transaction.
type Stores struct {
	Houses   house.Repository
	Accounts ledger.AccountRepository
	Entries  ledger.EntryRepository
	Wallets  token.Repository
	Stakes   stake.Repository
	Events   event.Repository
}

// UnitOfWork runs fn inside a single transaction. If fn returns an error nothing it wrote is
// kept.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
