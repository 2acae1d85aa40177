package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Load returns the owner's account, or an empty one if none is stored
func (r *GormAccountRepository) Load(ctx context.Context, owner shared.Address) (*ledger.Account, error) {
	var model AccountModel
	result := r.db.WithContext(ctx).Where("owner = ?", owner.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ledger.NewAccount(owner), nil
		}
		return nil, fmt.Errorf("failed to load account: %w", result.Error)
	}

	var balances resource.Bundle
	columns := [resource.Count]string{model.Power, model.Lumber, model.Brick, model.Concrete, model.Steel}
	for i, raw := range columns {
		amount, err := decodeAmount(resource.Kind(i).String(), raw)
		if err != nil {
			return nil, err
		}
		balances[i] = amount
	}
	return ledger.ReconstructAccount(owner, balances, model.UpdatedAt), nil
}

// Save inserts or replaces the account row
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	b := account.Balances().Strings()
	model := &AccountModel{
		Owner:     account.Owner().String(),
		Power:     b[resource.Power],
		Lumber:    b[resource.Lumber],
		Brick:     b[resource.Brick],
		Concrete:  b[resource.Concrete],
		Steel:     b[resource.Steel],
		UpdatedAt: account.UpdatedAt(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save account: %w", result.Error)
	}
	return nil
}
