package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GormHouseRepository implements house.Repository using GORM
type GormHouseRepository struct {
	db *gorm.DB
}

// NewGormHouseRepository creates a new GORM house repository
func NewGormHouseRepository(db *gorm.DB) *GormHouseRepository {
	return &GormHouseRepository{db: db}
}

// FindByID retrieves a house by its id
func (r *GormHouseRepository) FindByID(ctx context.Context, id house.ID) (*house.House, error) {
	var model HouseModel
	result := r.db.WithContext(ctx).Where("id = ?", int64(id)).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &house.ErrHouseNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find house: %w", result.Error)
	}
	return r.modelToHouse(&model)
}

// FindByOwner retrieves every house an owner holds, in id order
func (r *GormHouseRepository) FindByOwner(ctx context.Context, owner shared.Address) ([]*house.House, error) {
	var models []HouseModel
	result := r.db.WithContext(ctx).Where("owner = ?", owner.String()).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find houses: %w", result.Error)
	}

	houses := make([]*house.House, 0, len(models))
	for i := range models {
		h, err := r.modelToHouse(&models[i])
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, nil
}

// Save inserts or replaces a house
func (r *GormHouseRepository) Save(ctx context.Context, h *house.House) error {
	model, err := r.houseToModel(h)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "name", "rare", "dead", "state", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save house %d: %w", h.ID(), result.Error)
	}
	return nil
}

// NextID returns one past the highest id minted so far, starting at zero
func (r *GormHouseRepository) NextID(ctx context.Context) (house.ID, error) {
	var maxID *int64
	result := r.db.WithContext(ctx).Model(&HouseModel{}).Select("MAX(id)").Scan(&maxID)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to read max house id: %w", result.Error)
	}
	if maxID == nil {
		return 0, nil
	}
	return house.ID(*maxID + 1), nil
}

// CountRare returns how many rare houses have been minted
func (r *GormHouseRepository) CountRare(ctx context.Context) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&HouseModel{}).Where("rare = ?", true).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count rare houses: %w", result.Error)
	}
	return int(count), nil
}

func (r *GormHouseRepository) houseToModel(h *house.House) (*HouseModel, error) {
	snap := h.Snapshot()
	state, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal house state: %w", err)
	}
	return &HouseModel{
		ID:        int64(snap.ID),
		Owner:     snap.Owner,
		Name:      snap.Name,
		Rare:      snap.Rare,
		Dead:      snap.Dead,
		State:     string(state),
		CreatedAt: snap.CreatedAt,
	}, nil
}

func (r *GormHouseRepository) modelToHouse(model *HouseModel) (*house.House, error) {
	var snap house.Snapshot
	if err := json.Unmarshal([]byte(model.State), &snap); err != nil {
		return nil, fmt.Errorf("invalid state for house %d in database: %w", model.ID, err)
	}
	// Columns are authoritative for the fields queries filter on
	snap.ID = house.ID(model.ID)
	snap.Owner = model.Owner
	snap.Name = model.Name
	snap.Rare = model.Rare

	h, err := house.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("invalid house %d in database: %w", model.ID, err)
	}
	return h, nil
}
