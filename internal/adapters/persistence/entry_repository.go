package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GORM entry repository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Create persists a new entry
func (r *GormEntryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	model, err := r.entryToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to convert entry to model: %w", err)
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create entry: %w", result.Error)
	}

	return nil
}

// FindByID retrieves an entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id ledger.EntryID, owner shared.Address) (*ledger.Entry, error) {
	var model EntryModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id.String(), owner.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &ledger.ErrEntryNotFound{
				ID:    id.String(),
				Owner: owner.String(),
			}
		}
		return nil, fmt.Errorf("failed to find entry: %w", result.Error)
	}

	return r.modelToEntry(&model)
}

// FindByOwner retrieves entries for an owner with optional filtering
func (r *GormEntryRepository) FindByOwner(ctx context.Context, owner shared.Address, opts ledger.QueryOptions) ([]*ledger.Entry, error) {
	query := r.db.WithContext(ctx).Where("owner = ?", owner.String())

	// Apply filters
	query = r.applyFilters(query, opts)

	// Apply sorting
	orderBy := "timestamp DESC, seq DESC"
	if opts.OrderBy == "timestamp ASC" {
		orderBy = "timestamp ASC, seq ASC"
	}
	query = query.Order(orderBy)

	// Apply pagination
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []EntryModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find entries: %w", result.Error)
	}

	entries := make([]*ledger.Entry, len(models))
	for i := range models {
		entry, err := r.modelToEntry(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert entry model: %w", err)
		}
		entries[i] = entry
	}

	return entries, nil
}

// CountByOwner returns the count of entries matching the criteria
func (r *GormEntryRepository) CountByOwner(ctx context.Context, owner shared.Address, opts ledger.QueryOptions) (int, error) {
	query := r.db.WithContext(ctx).Model(&EntryModel{}).Where("owner = ?", owner.String())
	query = r.applyFilters(query, opts)

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count entries: %w", result.Error)
	}

	return int(count), nil
}

// applyFilters applies query options to a GORM query
func (r *GormEntryRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.StartDate != nil {
		query = query.Where("timestamp >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("timestamp <= ?", *opts.EndDate)
	}
	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}
	if opts.EntryType != nil {
		query = query.Where("entry_type = ?", opts.EntryType.String())
	}
	if opts.HouseID != nil {
		query = query.Where("house_id = ?", *opts.HouseID)
	}
	return query
}

// modelToEntry converts database model to domain entity
func (r *GormEntryRepository) modelToEntry(model *EntryModel) (*ledger.Entry, error) {
	id, err := ledger.NewEntryIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry ID in database: %w", err)
	}
	owner, err := shared.NewAddress(model.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner in database: %w", err)
	}
	entryType, err := ledger.ParseEntryType(model.EntryType)
	if err != nil {
		return nil, fmt.Errorf("invalid entry type in database: %w", err)
	}
	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}
	delta, err := decodeBundle(model.Delta)
	if err != nil {
		return nil, err
	}
	before, err := decodeBundle(model.BalanceBefore)
	if err != nil {
		return nil, err
	}
	after, err := decodeBundle(model.BalanceAfter)
	if err != nil {
		return nil, err
	}

	return ledger.ReconstructEntry(
		id,
		owner,
		model.HouseID,
		model.Timestamp,
		entryType,
		category,
		delta,
		before,
		after,
		model.Description,
		decodeMap(model.Metadata),
	), nil
}

// entryToModel converts domain entity to database model
func (r *GormEntryRepository) entryToModel(entry *ledger.Entry) (*EntryModel, error) {
	metadata, err := encodeMap(entry.Metadata())
	if err != nil {
		return nil, err
	}
	delta, err := encodeBundle(entry.Delta())
	if err != nil {
		return nil, err
	}
	before, err := encodeBundle(entry.BalanceBefore())
	if err != nil {
		return nil, err
	}
	after, err := encodeBundle(entry.BalanceAfter())
	if err != nil {
		return nil, err
	}

	var houseID *int64
	if id, ok := entry.HouseID(); ok {
		houseID = &id
	}

	return &EntryModel{
		ID:            entry.ID().String(),
		Owner:         entry.Owner().String(),
		HouseID:       houseID,
		Timestamp:     entry.Timestamp(),
		EntryType:     entry.EntryType().String(),
		Category:      entry.Category().String(),
		Delta:         delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   entry.Description(),
		Metadata:      metadata,
	}, nil
}
