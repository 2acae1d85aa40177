package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/application/game"
)

// GormUnitOfWork runs each game operation inside one database transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a unit of work over db
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do opens a transaction, hands fn repositories bound to it, and commits if fn succeeds
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores game.Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, StoresFor(tx))
	})
}

// StoresFor binds every repository to db
func StoresFor(db *gorm.DB) game.Stores {
	return game.Stores{
		Houses:   NewGormHouseRepository(db),
		Accounts: NewGormAccountRepository(db),
		Entries:  NewGormEntryRepository(db),
		Wallets:  NewGormWalletRepository(db),
		Stakes:   NewGormStakeRepository(db),
		Events:   NewGormEventRepository(db),
	}
}
