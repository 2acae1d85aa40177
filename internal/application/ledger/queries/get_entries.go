package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetEntriesQuery represents a query to retrieve an owner's ledger entries
type GetEntriesQuery struct {
	Owner     string `validate:"required"`
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
	EntryType *string
	HouseID   *int64
	Limit     int    `validate:"gte=0"`
	Offset    int    `validate:"gte=0"`
	OrderBy   string // "timestamp ASC" or "timestamp DESC"
}

// GetEntriesResponse represents the result of the query
type GetEntriesResponse struct {
	Entries []*EntryDTO
	Total   int
}

// EntryDTO represents a ledger entry data transfer object
type EntryDTO struct {
	ID            string
	Owner         string
	HouseID       *int64
	Timestamp     time.Time
	Type          string
	Category      string
	Delta         resource.Bundle
	BalanceBefore resource.Bundle
	BalanceAfter  resource.Bundle
	Description   string
	Metadata      map[string]interface{}
}

// GetEntriesHandler handles the GetEntries query
type GetEntriesHandler struct {
	runner *game.Runner
}

// NewGetEntriesHandler creates a new GetEntriesHandler
func NewGetEntriesHandler(runner *game.Runner) *GetEntriesHandler {
	return &GetEntriesHandler{runner: runner}
}

// Handle executes the GetEntries query
func (h *GetEntriesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetEntriesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEntriesQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}
	owner, err := shared.NewAddress(query.Owner)
	if err != nil {
		return nil, err
	}
	opts, err := h.buildQueryOptions(query)
	if err != nil {
		return nil, err
	}

	var response *GetEntriesResponse
	err = h.runner.View(ctx, owner, func(s *game.Session) error {
		entries, err := s.Stores().Entries.FindByOwner(s.Context(), owner, opts)
		if err != nil {
			return fmt.Errorf("failed to query entries: %w", err)
		}
		total, err := s.Stores().Entries.CountByOwner(s.Context(), owner, opts)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		dtos := make([]*EntryDTO, len(entries))
		for i, e := range entries {
			dtos[i] = toDTO(e)
		}
		response = &GetEntriesResponse{Entries: dtos, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (h *GetEntriesHandler) buildQueryOptions(query *GetEntriesQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()

	opts.StartDate = query.StartDate
	opts.EndDate = query.EndDate
	opts.HouseID = query.HouseID

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return opts, shared.NewValidationError("category", err.Error())
		}
		opts.Category = &category
	}

	if query.EntryType != nil {
		entryType, err := ledger.ParseEntryType(*query.EntryType)
		if err != nil {
			return opts, shared.NewValidationError("entry_type", err.Error())
		}
		opts.EntryType = &entryType
	}

	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset

	switch query.OrderBy {
	case "":
	case "timestamp ASC", "timestamp DESC":
		opts.OrderBy = query.OrderBy
	default:
		return opts, shared.NewValidationError("order_by", "must be \"timestamp ASC\" or \"timestamp DESC\"")
	}

	return opts, nil
}

func toDTO(e *ledger.Entry) *EntryDTO {
	var houseID *int64
	if id, ok := e.HouseID(); ok {
		houseID = &id
	}
	return &EntryDTO{
		ID:            e.ID().String(),
		Owner:         e.Owner().String(),
		HouseID:       houseID,
		Timestamp:     e.Timestamp(),
		Type:          e.EntryType().String(),
		Category:      e.Category().String(),
		Delta:         e.Delta(),
		BalanceBefore: e.BalanceBefore(),
		BalanceAfter:  e.BalanceAfter(),
		Description:   e.Description(),
		Metadata:      e.Metadata(),
	}
}
