package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetResourceFlowQuery represents a query for an owner's resource flow statement
type GetResourceFlowQuery struct {
	Owner     string `validate:"required"`
	StartDate time.Time
	EndDate   time.Time
}

// GetResourceFlowResponse represents the flow statement, one line per category
type GetResourceFlowResponse struct {
	Period     string
	Categories []*CategoryFlow
	Net        resource.Bundle
}

// CategoryFlow is the inflow and outflow of every resource kind in one category
type CategoryFlow struct {
	Category string
	Inflow   resource.Bundle
	Outflow  resource.Bundle
	Net      resource.Bundle
	Entries  int
}

// GetResourceFlowHandler handles the GetResourceFlow query
type GetResourceFlowHandler struct {
	runner *game.Runner
}

// NewGetResourceFlowHandler creates a new GetResourceFlowHandler
func NewGetResourceFlowHandler(runner *game.Runner) *GetResourceFlowHandler {
	return &GetResourceFlowHandler{runner: runner}
}

// Handle executes the GetResourceFlow query
func (h *GetResourceFlowHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetResourceFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetResourceFlowQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}
	owner, err := shared.NewAddress(query.Owner)
	if err != nil {
		return nil, err
	}
	if !query.EndDate.IsZero() && query.EndDate.Before(query.StartDate) {
		return nil, shared.NewValidationError("end_date", "must not be before start_date")
	}

	opts := ledger.QueryOptions{OrderBy: "timestamp ASC"}
	if !query.StartDate.IsZero() {
		opts.StartDate = &query.StartDate
	}
	if !query.EndDate.IsZero() {
		opts.EndDate = &query.EndDate
	}

	var entries []*ledger.Entry
	err = h.runner.View(ctx, owner, func(s *game.Session) error {
		found, err := s.Stores().Entries.FindByOwner(s.Context(), owner, opts)
		if err != nil {
			return fmt.Errorf("failed to query entries: %w", err)
		}
		entries = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return calculateFlow(query, entries), nil
}

func calculateFlow(query *GetResourceFlowQuery, entries []*ledger.Entry) *GetResourceFlowResponse {
	flows := make(map[ledger.Category]*CategoryFlow)
	for _, cat := range ledger.AllCategories() {
		flows[cat] = &CategoryFlow{Category: cat.String()}
	}

	var net resource.Bundle
	for _, e := range entries {
		flow := flows[e.Category()]
		flow.Entries++
		delta := e.Delta()
		for _, kind := range resource.AllKinds() {
			amount := delta[kind]
			if amount.IsPositive() {
				flow.Inflow[kind] = flow.Inflow[kind].Add(amount)
			} else if amount.IsNegative() {
				flow.Outflow[kind] = flow.Outflow[kind].Sub(amount)
			}
		}
		flow.Net = flow.Inflow.Sub(flow.Outflow)
		net = net.Add(delta)
	}

	// Categories keep their fixed order; empty ones are left out
	categories := make([]*CategoryFlow, 0)
	for _, cat := range ledger.AllCategories() {
		if flows[cat].Entries > 0 {
			categories = append(categories, flows[cat])
		}
	}

	return &GetResourceFlowResponse{
		Period:     formatPeriod(query.StartDate, query.EndDate),
		Categories: categories,
		Net:        net,
	}
}

func formatPeriod(start, end time.Time) string {
	from, to := "beginning", "now"
	if !start.IsZero() {
		from = start.Format("2006-01-02")
	}
	if !end.IsZero() {
		to = end.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", from, to)
}
