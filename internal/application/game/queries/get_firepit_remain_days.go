package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetFirepitRemainDaysQuery reads how long the stocked firepit keeps burning
type GetFirepitRemainDaysQuery struct {
	HouseID int64 `validate:"gte=0"`
}

// GetFirepitRemainDaysResponse carries the firepit stock
type GetFirepitRemainDaysResponse struct {
	HouseID    int64
	Lumber     decimal.Decimal
	RemainDays int64
}

// GetFirepitRemainDaysHandler handles the GetFirepitRemainDays query
type GetFirepitRemainDaysHandler struct {
	runner *game.Runner
}

// NewGetFirepitRemainDaysHandler creates a new GetFirepitRemainDaysHandler
func NewGetFirepitRemainDaysHandler(runner *game.Runner) *GetFirepitRemainDaysHandler {
	return &GetFirepitRemainDaysHandler{runner: runner}
}

// Handle executes the GetFirepitRemainDays query
func (h *GetFirepitRemainDaysHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetFirepitRemainDaysQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFirepitRemainDaysQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}

	var response *GetFirepitRemainDaysResponse
	err := h.runner.View(ctx, shared.Address{}, func(s *game.Session) error {
		hs, err := s.House(house.ID(query.HouseID))
		if err != nil {
			return err
		}
		response = &GetFirepitRemainDaysResponse{
			HouseID:    query.HouseID,
			Lumber:     hs.FirepitLumber(),
			RemainDays: hs.FirepitRemainDays(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
