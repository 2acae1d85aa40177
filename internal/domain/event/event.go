package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Type names what happened
type Type string

const (
	HouseMinted      Type = "HouseMinted"
	HouseRenamed     Type = "HouseRenamed"
	HouseTransferred Type = "HouseTransferred"
	HouseActivated   Type = "HouseActivated"
	FacilityUpgraded Type = "FacilityUpgraded"
	AddonBought      Type = "AddonBought"
	AddonSalvaged    Type = "AddonSalvaged"
	GardenFertilized Type = "GardenFertilized"
	ToolshedBought   Type = "ToolshedBought"
	ToolshedSwitched Type = "ToolshedSwitched"
	FireplaceBought  Type = "FireplaceBought"
	LumberBurned     Type = "LumberBurned"
	FirepitLoaded    Type = "FirepitLoaded"
	HarvesterBought  Type = "HarvesterBought"
	FoundationBought Type = "ConcreteFoundationBought"
	OverdriveBought  Type = "ResourceOverdriveBought"
	LumberGathered   Type = "LumberGathered"
	Fortified        Type = "Fortified"
	Repaired         Type = "Repaired"
	HandymanHired    Type = "HandymanHired"
	Harvested        Type = "Harvested"
	HouseDied        Type = "HouseDied"
	PowerBought      Type = "PowerBought"
	ResourcesGranted Type = "ResourcesGranted"
	TokensGranted    Type = "TokensGranted"
	Staked           Type = "Staked"
	Unstaked         Type = "Unstaked"
)

// Event is the structured record every mutating operation emits. Observers consume events;
// the game itself never reads them back.
type Event struct {
	ID      string                 `json:"id"`
	At      time.Time              `json:"at"`
	Actor   string                 `json:"actor"`
	HouseID *int64                 `json:"house_id,omitempty"`
	Type    Type                   `json:"type"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// New builds an event with a fresh id
func New(at time.Time, actor shared.Address, houseID *int64, typ Type, data map[string]interface{}) *Event {
	return &Event{
		ID:      uuid.New().String(),
		At:      at,
		Actor:   actor.String(),
		HouseID: houseID,
		Type:    typ,
		Data:    data,
	}
}

// Publisher delivers committed events to an observer
type Publisher interface {
	Publish(ctx context.Context, events []*Event) error
}

// Filter narrows an event history query
type Filter struct {
	Actor   string
	HouseID *int64
	Type    Type
	Since   *time.Time
	Limit   int
	Offset  int
}

// Repository stores the event history alongside the game state
type Repository interface {
	Append(ctx context.Context, events []*Event) error
	List(ctx context.Context, filter Filter) ([]*Event, error)
}

// Matches reports whether e passes the filter. Limit and Offset are ignored.
func (f Filter) Matches(e *Event) bool {
	if f.Actor != "" && e.Actor != f.Actor {
		return false
	}
	if f.HouseID != nil && (e.HouseID == nil || *e.HouseID != *f.HouseID) {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Since != nil && e.At.Before(*f.Since) {
		return false
	}
	return true
}
