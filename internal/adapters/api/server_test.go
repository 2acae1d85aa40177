package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/api"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	houseCommands "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

type recorder struct {
	requests    []int
	rateLimited int
}

func (r *recorder) RecordAPIRequest(method string, route string, statusCode int, duration float64) {
	r.requests = append(r.requests, statusCode)
}

func (r *recorder) RecordRateLimited(route string) {
	r.rateLimited++
}

func newServer(t *testing.T, opts api.Options) (*helpers.TestGame, *httptest.Server) {
	t.Helper()
	g, err := helpers.NewTestGame(helpers.NewTestDB(t))
	require.NoError(t, err)
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 100
		opts.Burst = 100
	}
	srv := httptest.NewServer(api.NewServer(g.Mediator, opts).Handler())
	t.Cleanup(srv.Close)
	return g, srv
}

func post(t *testing.T, srv *httptest.Server, op, actor, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/ops/"+op, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(api.ActorHeader, actor)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestServer_OperationTakesActorFromHeader(t *testing.T) {
	// Arrange
	_, srv := newServer(t, api.Options{})

	// Act: the body claims to be the admin, the header does not
	resp := post(t, srv, "mint_house", "mallory", `{"Actor":"admin","Owner":"mallory"}`)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var body api.ErrorBody
	decode(t, resp, &body)
	assert.Equal(t, "authorization", body.Kind)
}

func TestServer_MintAndReadHouse(t *testing.T) {
	_, srv := newServer(t, api.Options{})

	resp := post(t, srv, "mint_house", helpers.AdminAddress, `{"owner":"alice","rare":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var minted houseCommands.MintHouseResponse
	decode(t, resp, &minted)
	assert.Equal(t, "alice", minted.Owner)
	assert.True(t, minted.Rare)

	get, err := http.Get(srv.URL + "/v1/houses/0")
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)

	var details gameQueries.GetHouseDetailsResponse
	decode(t, get, &details)
	require.NotNil(t, details.House)
	assert.Equal(t, "alice", details.House.Owner)
	assert.False(t, details.House.Activated)
}

func TestServer_MapsRejectionKinds(t *testing.T) {
	g, srv := newServer(t, api.Options{})
	id, err := g.MintHouse("alice", false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		op     string
		actor  string
		body   string
		status int
		kind   string
	}{
		{"unknown operation", "teleport", "alice", `{}`, http.StatusNotFound, "not_found"},
		{"malformed body", "activate_house", "alice", `{"HouseID":`, http.StatusBadRequest, "invalid_argument"},
		{"missing house", "activate_house", "alice", `{"HouseID":42}`, http.StatusNotFound, "not_found"},
		{"not the owner", "activate_house", "bob", `{"HouseID":0}`, http.StatusForbidden, "authorization"},
		{"inactive house", "fortify", "alice", `{"HouseID":0,"Material":"brick"}`, http.StatusConflict, ""},
	}
	require.Equal(t, int64(0), id)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.op, tt.actor, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var body api.ErrorBody
			decode(t, resp, &body)
			assert.NotEmpty(t, body.Error)
			if tt.kind != "" {
				assert.Equal(t, tt.kind, body.Kind)
			}
		})
	}
}

func TestServer_RateLimitsPerActor(t *testing.T) {
	rec := &recorder{}
	_, srv := newServer(t, api.Options{RequestsPerSecond: 1, Burst: 2, Recorder: rec})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/v1/owners/alice/resources")
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, 1, rec.rateLimited)
	assert.Len(t, rec.requests, 3)

	// Another actor has its own bucket
	resp := post(t, srv, "get_resources", "bob", `{"Owner":"bob"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ListsEvents(t *testing.T) {
	g, srv := newServer(t, api.Options{})
	id, err := g.ActiveHouse("alice", false)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/v1/events?type=HouseActivated&house=" + "0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed gameQueries.ListEventsResponse
	decode(t, resp, &listed)
	require.Len(t, listed.Events, 1)
	assert.Equal(t, id, *listed.Events[0].HouseID)

	bad, err := http.Get(srv.URL + "/v1/events?since=yesterday")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestServer_ServesMetricsAndOps(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, srv := newServer(t, api.Options{Metrics: registry})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ops, err := http.Get(srv.URL + "/v1/ops")
	require.NoError(t, err)
	defer ops.Body.Close()
	var names []string
	decode(t, ops, &names)
	assert.Contains(t, names, "harvest")
	assert.Contains(t, names, "get_house")

	health, err := http.Post(srv.URL+"/healthz", "application/json", bytes.NewReader(nil))
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, health.StatusCode)
}
