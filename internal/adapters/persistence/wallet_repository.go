package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/stake"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// GormWalletRepository implements token.Repository using GORM
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Load returns the owner's wallet, or an empty one if none is stored
func (r *GormWalletRepository) Load(ctx context.Context, owner shared.Address) (*token.Wallet, error) {
	var model WalletModel
	result := r.db.WithContext(ctx).Where("owner = ?", owner.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return token.NewWallet(owner), nil
		}
		return nil, fmt.Errorf("failed to load wallet: %w", result.Error)
	}
	land, err := decodeAmount("land", model.Land)
	if err != nil {
		return nil, err
	}
	asset, err := decodeAmount("asset", model.Asset)
	if err != nil {
		return nil, err
	}
	return token.ReconstructWallet(owner, land, asset, model.UpdatedAt), nil
}

// Save inserts or replaces the wallet row
func (r *GormWalletRepository) Save(ctx context.Context, w *token.Wallet) error {
	model := &WalletModel{
		Owner:     w.Owner().String(),
		Land:      w.Balance(token.LandToken).String(),
		Asset:     w.Balance(token.AssetToken).String(),
		UpdatedAt: w.UpdatedAt(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save wallet: %w", result.Error)
	}
	return nil
}

// GormStakeRepository implements stake.Repository using GORM
type GormStakeRepository struct {
	db *gorm.DB
}

// NewGormStakeRepository creates a new GORM stake repository
func NewGormStakeRepository(db *gorm.DB) *GormStakeRepository {
	return &GormStakeRepository{db: db}
}

// Find returns the house's position, or an empty one if none is stored
func (r *GormStakeRepository) Find(ctx context.Context, houseID int64) (*stake.Position, error) {
	var model StakeModel
	result := r.db.WithContext(ctx).Where("house_id = ?", houseID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return stake.NewPosition(houseID), nil
		}
		return nil, fmt.Errorf("failed to find stake: %w", result.Error)
	}
	amount, err := decodeAmount("amount", model.Amount)
	if err != nil {
		return nil, err
	}
	return stake.ReconstructPosition(houseID, amount, model.UpdatedAt), nil
}

// Save inserts or replaces the position row
func (r *GormStakeRepository) Save(ctx context.Context, p *stake.Position) error {
	model := &StakeModel{
		HouseID:   p.HouseID(),
		Amount:    p.Amount().String(),
		UpdatedAt: p.UpdatedAt(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save stake: %w", result.Error)
	}
	return nil
}
