package observer_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/observer"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForObservers(t *testing.T, hub *observer.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Count() == n }, 2*time.Second, 10*time.Millisecond)
}

func readEvent(t *testing.T, conn *websocket.Conn) event.Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var e event.Event
	require.NoError(t, json.Unmarshal(msg, &e))
	return e
}

func TestHub_StreamsFilteredEvents(t *testing.T) {
	// Arrange
	var last atomic.Int64
	hub := observer.NewHub(func(n int) { last.Store(int64(n)) })
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	all := dial(t, srv, "")
	bobOnly := dial(t, srv, "?actor=bob")
	waitForObservers(t, hub, 2)
	assert.Equal(t, int64(2), last.Load())

	one, two := int64(1), int64(2)
	alice := shared.MustNewAddress("alice")
	bob := shared.MustNewAddress("bob")
	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Act
	err := hub.Publish(context.Background(), []*event.Event{
		event.New(at, alice, &one, event.HouseActivated, nil),
		event.New(at, bob, &two, event.Harvested, nil),
	})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, event.HouseActivated, readEvent(t, all).Type)
	assert.Equal(t, event.Harvested, readEvent(t, all).Type)

	got := readEvent(t, bobOnly)
	assert.Equal(t, "bob", got.Actor)
	assert.Equal(t, int64(2), *got.HouseID)
}

func TestHub_HouseFilter(t *testing.T) {
	hub := observer.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv, "?house=7")
	waitForObservers(t, hub, 1)

	seven, eight := int64(7), int64(8)
	alice := shared.MustNewAddress("alice")
	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, hub.Publish(context.Background(), []*event.Event{
		event.New(at, alice, &eight, event.Repaired, nil),
		event.New(at, alice, nil, event.TokensGranted, nil),
		event.New(at, alice, &seven, event.Fortified, nil),
	}))

	assert.Equal(t, event.Fortified, readEvent(t, conn).Type)
}

func TestHub_RejectsBadHouseParameter(t *testing.T) {
	hub := observer.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events?house=abc"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHub_DropsClosedObservers(t *testing.T) {
	hub := observer.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	waitForObservers(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForObservers(t, hub, 0)

	assert.NoError(t, hub.Publish(context.Background(), []*event.Event{
		event.New(time.Now(), shared.MustNewAddress("alice"), nil, event.Staked, nil),
	}))
}
