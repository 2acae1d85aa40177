package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/api"
	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func noSleep(time.Duration) {}

func TestClient_SendsTypedRequests(t *testing.T) {
	// Arrange
	g, srv := newServer(t, api.Options{})
	require.NoError(t, g.GrantTokens("alice", 5, 0))
	client := api.NewClient(srv.URL, "alice", g.Clock, api.WithSleep(noSleep))

	// Act
	resp, err := client.Send(context.Background(), &gameCommands.BuyPowerWithLandtokenCommand{Amount: decimal.NewFromInt(2)})

	// Assert
	require.NoError(t, err)
	bought, ok := resp.(*gameCommands.BuyPowerWithLandtokenResponse)
	require.True(t, ok)
	assert.True(t, bought.Paid.Equal(decimal.NewFromInt(2)))
	assert.True(t, bought.Power.Equal(decimal.NewFromInt(20)))

	res, err := client.Send(context.Background(), &gameQueries.GetResourcesQuery{Owner: "alice"})
	require.NoError(t, err)
	balances := res.(*gameQueries.GetResourcesResponse)
	assert.True(t, balances.LandToken.Equal(decimal.NewFromInt(3)))
}

func TestClient_RebuildsRejectionKind(t *testing.T) {
	g, srv := newServer(t, api.Options{})
	id, err := g.MintHouse("alice", false)
	require.NoError(t, err)
	client := api.NewClient(srv.URL, "bob", g.Clock, api.WithSleep(noSleep))

	_, err = client.Send(context.Background(), &gameCommands.ActivateHouseCommand{HouseID: id})

	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindAuthorization))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(rw, `{"error":"database is locked"}`, http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"HouseID":3,"Lumber":"4","RemainDays":4}`))
	}))
	defer srv.Close()

	var slept []time.Duration
	client := api.NewClient(srv.URL, "alice", shared.NewMockClock(helpers.GameStart),
		api.WithRetries(3, 100*time.Millisecond),
		api.WithSleep(func(d time.Duration) { slept = append(slept, d) }))

	resp, err := client.Send(context.Background(), &gameQueries.GetFirepitRemainDaysQuery{HouseID: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.(*gameQueries.GetFirepitRemainDaysResponse).RemainDays)
	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, slept, 2)
	assert.GreaterOrEqual(t, slept[1], 100*time.Millisecond)
}

func TestClient_DoesNotRetryRejections(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		rw.WriteHeader(http.StatusPaymentRequired)
		_, _ = rw.Write([]byte(`{"error":"insufficient lumber"}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, "alice", nil, api.WithSleep(noSleep))
	_, err := client.Send(context.Background(), &gameCommands.RepairCommand{HouseID: 1, Amount: decimal.NewFromInt(10)})

	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInsufficient))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_OpensCircuitAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		rw.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	clock := shared.NewMockClock(helpers.GameStart)
	client := api.NewClient(srv.URL, "alice", clock, api.WithRetries(4, time.Millisecond), api.WithSleep(noSleep))

	_, err := client.Send(context.Background(), &gameQueries.GetHouseDetailsQuery{HouseID: 1})
	require.Error(t, err)

	assert.Equal(t, int32(5), calls.Load())

	_, err = client.Send(context.Background(), &gameQueries.GetHouseDetailsQuery{HouseID: 1})
	assert.ErrorIs(t, err, api.ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load())

	// After the cooldown one probe goes through; its failure reopens the circuit
	clock.Advance(time.Minute)
	_, err = client.Send(context.Background(), &gameQueries.GetHouseDetailsQuery{HouseID: 1})
	assert.ErrorIs(t, err, api.ErrCircuitOpen)
	assert.Equal(t, int32(6), calls.Load())
}

func TestClient_UnknownRequestType(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:0", "alice", nil)
	_, err := client.Send(context.Background(), struct{}{})
	assert.Error(t, err)
}
