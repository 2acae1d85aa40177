package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// ActorHeader carries the address a request acts as
const ActorHeader = "X-Actor"

const maxBodyBytes = 1 << 20

// Recorder receives per-request measurements
type Recorder interface {
	RecordAPIRequest(method string, route string, statusCode int, duration float64)
	RecordRateLimited(route string)
}

// Options configures the HTTP surface
type Options struct {
	RequestsPerSecond int
	Burst             int

	// Optional
	Recorder    Recorder
	Metrics     *prometheus.Registry
	MetricsPath string
	Events      http.Handler
	Logger      common.Logger
}

// Server exposes the mediator over HTTP JSON
type Server struct {
	mediator mediator.Mediator
	limiter  *actorLimiter
	opts     Options
	mux      *http.ServeMux
}

// NewServer creates a server and its routes
func NewServer(m mediator.Mediator, opts Options) *Server {
	if opts.RequestsPerSecond < 1 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst < 1 {
		opts.Burst = opts.RequestsPerSecond
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	s := &Server{
		mediator: m,
		limiter:  newActorLimiter(opts.RequestsPerSecond, opts.Burst),
		opts:     opts,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.mux.HandleFunc("GET /v1/ops", func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, OperationNames())
	})

	s.handle("POST /v1/ops/{name}", "ops", s.operation)
	s.handle("GET /v1/houses/{id}", "house", s.house)
	s.handle("GET /v1/owners/{owner}/houses", "owner_houses", s.ownerHouses)
	s.handle("GET /v1/owners/{owner}/resources", "owner_resources", s.ownerResources)
	s.handle("GET /v1/events", "events", s.events)

	if s.opts.Events != nil {
		s.mux.Handle("GET /v1/events/stream", s.opts.Events)
	}
	if s.opts.Metrics != nil {
		s.mux.Handle("GET "+s.opts.MetricsPath, promhttp.HandlerFor(s.opts.Metrics, promhttp.HandlerOpts{}))
	}
}

type endpoint func(r *http.Request, actor string) (mediator.Request, error)

// handle wraps an endpoint with the limiter, dispatch, error mapping and measurement
func (s *Server) handle(pattern, route string, build endpoint) {
	s.mux.HandleFunc(pattern, func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := s.serve(rw, r, route, build)
		if s.opts.Recorder != nil {
			s.opts.Recorder.RecordAPIRequest(r.Method, route, status, time.Since(start).Seconds())
		}
	})
}

func (s *Server) serve(rw http.ResponseWriter, r *http.Request, route string, build endpoint) int {
	actor := r.Header.Get(ActorHeader)
	if !s.limiter.allow(limiterKey(r, actor)) {
		if s.opts.Recorder != nil {
			s.opts.Recorder.RecordRateLimited(route)
		}
		rw.Header().Set("Retry-After", "1")
		return writeJSON(rw, http.StatusTooManyRequests, ErrorBody{Error: "rate limit exceeded"})
	}

	request, err := build(r, actor)
	if err != nil {
		return s.fail(rw, r, err)
	}

	ctx := r.Context()
	if s.opts.Logger != nil {
		ctx = common.WithFields(common.WithLogger(ctx, s.opts.Logger), map[string]interface{}{"route": route})
	}
	response, err := s.mediator.Send(ctx, request)
	if err != nil {
		return s.fail(rw, r, err)
	}
	return writeJSON(rw, http.StatusOK, response)
}

func (s *Server) fail(rw http.ResponseWriter, r *http.Request, err error) int {
	status := statusFor(err)
	body := ErrorBody{Error: err.Error()}
	if kind := kindOf(err); kind != "" {
		body.Kind = kind
	}
	if status == http.StatusInternalServerError && s.opts.Logger != nil {
		s.opts.Logger.Log("ERROR", fmt.Sprintf("%s %s failed: %v", r.Method, r.URL.Path, err), nil)
	}
	return writeJSON(rw, status, body)
}

func (s *Server) operation(r *http.Request, actor string) (mediator.Request, error) {
	name := r.PathValue("name")
	op, ok := LookupOperation(name)
	if !ok {
		return nil, notFound(fmt.Sprintf("unknown operation %q", name))
	}
	request := op.NewRequest()
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid("body", err.Error())
	}
	if op.Command {
		bindActor(request, actor)
	}
	return request, nil
}

func (s *Server) house(r *http.Request, _ string) (mediator.Request, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, invalid("house_id", "must be an integer")
	}
	return &gameQueries.GetHouseDetailsQuery{HouseID: id}, nil
}

func (s *Server) ownerHouses(r *http.Request, _ string) (mediator.Request, error) {
	return &gameQueries.GetHousesByOwnerQuery{Owner: r.PathValue("owner")}, nil
}

func (s *Server) ownerResources(r *http.Request, _ string) (mediator.Request, error) {
	return &gameQueries.GetResourcesQuery{Owner: r.PathValue("owner")}, nil
}

func (s *Server) events(r *http.Request, _ string) (mediator.Request, error) {
	q := r.URL.Query()
	query := &gameQueries.ListEventsQuery{Actor: q.Get("actor"), Type: q.Get("type")}
	if raw := q.Get("house"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalid("house", "must be an integer")
		}
		query.HouseID = &id
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, invalid("since", "must be an RFC 3339 time")
		}
		query.Since = &since
	}
	var err error
	if query.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return nil, err
	}
	if query.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return nil, err
	}
	return query, nil
}

func intParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "must be an integer")
	}
	return n, nil
}

// limiterKey buckets authenticated callers by actor and anonymous ones by remote host
func limiterKey(r *http.Request, actor string) string {
	if actor != "" {
		return "actor:" + actor
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func writeJSON(rw http.ResponseWriter, status int, body interface{}) int {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
	return status
}
