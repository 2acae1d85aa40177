package eventlog_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/eventlog"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

var alice = shared.MustNewAddress("alice")

func houseRef(id int64) *int64 { return &id }

func TestWriter_RotatesHourly(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	w := eventlog.NewWriter(dir, 1)
	t0 := time.Date(2024, time.March, 1, 10, 59, 0, 0, time.UTC)
	batch := []*event.Event{
		event.New(t0, alice, houseRef(1), event.HouseActivated, nil),
		event.New(t0.Add(2*time.Minute), alice, houseRef(1), event.Harvested, map[string]interface{}{"token": "1.5"}),
	}

	// Act
	require.NoError(t, w.Publish(context.Background(), batch))
	require.NoError(t, w.Close())

	// Assert
	_, err := os.Stat(w.PathForHour("2024-03-01-10"))
	require.NoError(t, err)
	_, err = os.Stat(w.PathForHour("2024-03-01-11"))
	require.NoError(t, err)

	all, err := eventlog.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, event.HouseActivated, all[0].Type)
	assert.Equal(t, event.Harvested, all[1].Type)
	assert.Equal(t, "1.5", all[1].Data["token"])
	assert.Equal(t, int64(1), *all[1].HouseID)
}

func TestWriter_AppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	first := eventlog.NewWriter(dir, 2)
	require.NoError(t, first.Publish(context.Background(), []*event.Event{event.New(at, alice, nil, event.HouseMinted, nil)}))
	require.NoError(t, first.Close())

	second := eventlog.NewWriter(dir, 2)
	require.NoError(t, second.Publish(context.Background(), []*event.Event{event.New(at.Add(time.Minute), alice, nil, event.HouseRenamed, nil)}))
	require.NoError(t, second.Close())

	events, err := eventlog.ReadFile(first.PathForHour("2024-03-01-10"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, event.HouseRenamed, events[1].Type)
}

func TestWriter_FlushesBeforeClose(t *testing.T) {
	dir := t.TempDir()
	w := eventlog.NewWriter(dir, 3)
	t.Cleanup(func() { _ = w.Close() })
	at := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, w.Publish(context.Background(), []*event.Event{event.New(at, alice, nil, event.Staked, nil)}))

	events, err := eventlog.ReadFile(w.PathForHour("2024-03-01-10"))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
