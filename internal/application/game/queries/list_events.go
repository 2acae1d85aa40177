package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ListEventsQuery reads the committed event history
type ListEventsQuery struct {
	Actor   string
	HouseID *int64
	Type    string
	Since   *time.Time
	Limit   int `validate:"gte=0,lte=1000"`
	Offset  int `validate:"gte=0"`
}

// ListEventsResponse carries events oldest first
type ListEventsResponse struct {
	Events []*event.Event
}

// ListEventsHandler handles the ListEvents query
type ListEventsHandler struct {
	runner *game.Runner
}

// NewListEventsHandler creates a new ListEventsHandler
func NewListEventsHandler(runner *game.Runner) *ListEventsHandler {
	return &ListEventsHandler{runner: runner}
}

// Handle executes the ListEvents query
func (h *ListEventsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListEventsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEventsQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}

	filter := event.Filter{
		Actor:   query.Actor,
		HouseID: query.HouseID,
		Type:    event.Type(query.Type),
		Since:   query.Since,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = 100
	}

	response := &ListEventsResponse{Events: []*event.Event{}}
	err := h.runner.View(ctx, shared.Address{}, func(s *game.Session) error {
		events, err := s.Stores().Events.List(s.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		response.Events = append(response.Events, events...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
