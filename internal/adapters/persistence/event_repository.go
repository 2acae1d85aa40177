package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
)

// GormEventRepository implements event.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append stores events in the order given
func (r *GormEventRepository) Append(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*EventModel, 0, len(events))
	for _, e := range events {
		data, err := encodeMap(e.Data)
		if err != nil {
			return err
		}
		models = append(models, &EventModel{
			EventID: e.ID,
			At:      e.At,
			Actor:   e.Actor,
			HouseID: e.HouseID,
			Type:    string(e.Type),
			Data:    data,
		})
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to append events: %w", err)
	}
	return nil
}

// List returns matching events oldest first
func (r *GormEventRepository) List(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	query := r.db.WithContext(ctx).Model(&EventModel{})
	if filter.Actor != "" {
		query = query.Where("actor = ?", filter.Actor)
	}
	if filter.HouseID != nil {
		query = query.Where("house_id = ?", *filter.HouseID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Since != nil {
		query = query.Where("at >= ?", *filter.Since)
	}
	query = query.Order("seq ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []EventModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*event.Event, len(models))
	for i, m := range models {
		events[i] = &event.Event{
			ID:      m.EventID,
			At:      m.At,
			Actor:   m.Actor,
			HouseID: m.HouseID,
			Type:    event.Type(m.Type),
			Data:    decodeMap(m.Data),
		}
	}
	return events, nil
}
