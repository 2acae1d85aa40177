package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func TestFilter_Matches(t *testing.T) {
	at := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	houseID := int64(2)
	otherHouse := int64(9)
	before := at.Add(-time.Minute)
	after := at.Add(time.Minute)
	e := event.New(at, shared.MustNewAddress("alice"), &houseID, event.Repaired, nil)
	global := event.New(at, shared.MustNewAddress("admin"), nil, event.ResourcesGranted, nil)

	tests := []struct {
		name   string
		filter event.Filter
		want   bool
	}{
		{"empty filter", event.Filter{Limit: 1, Offset: 5}, true},
		{"actor", event.Filter{Actor: "alice"}, true},
		{"other actor", event.Filter{Actor: "bob"}, false},
		{"house", event.Filter{HouseID: &houseID}, true},
		{"other house", event.Filter{HouseID: &otherHouse}, false},
		{"type", event.Filter{Type: event.Repaired}, true},
		{"other type", event.Filter{Type: event.Harvested}, false},
		{"since before", event.Filter{Since: &before}, true},
		{"since at", event.Filter{Since: &at}, true},
		{"since after", event.Filter{Since: &after}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(e))
		})
	}

	assert.False(t, event.Filter{HouseID: &houseID}.Matches(global), "events without a house never match a house filter")
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	a := event.New(at, shared.MustNewAddress("alice"), nil, event.Staked, map[string]interface{}{"amount": "10"})
	b := event.New(at, shared.MustNewAddress("alice"), nil, event.Staked, nil)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "alice", a.Actor)
	assert.Equal(t, "10", a.Data["amount"])
}
