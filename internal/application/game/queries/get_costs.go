package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetRepairCostQuery previews what repairing a house by Amount would cost
type GetRepairCostQuery struct {
	HouseID int64 `validate:"gte=0"`
	Amount  decimal.Decimal
}

// GetHarvestCostQuery previews what a harvest with Selector would cost
type GetHarvestCostQuery struct {
	HouseID  int64 `validate:"gte=0"`
	Selector resource.Selector
}

// CostResponse carries a previewed cost
type CostResponse struct {
	HouseID int64
	Cost    resource.Bundle
}

// GetCostHandler handles the cost preview queries
type GetCostHandler struct {
	runner *game.Runner
}

// NewGetCostHandler creates a new GetCostHandler
func NewGetCostHandler(runner *game.Runner) *GetCostHandler {
	return &GetCostHandler{runner: runner}
}

// Handle executes GetRepairCost and GetHarvestCost queries
func (h *GetCostHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	var (
		houseID int64
		price   func(hs *house.House, s *game.Session) resource.Bundle
	)
	switch query := request.(type) {
	case *GetRepairCostQuery:
		if query.Amount.IsNegative() {
			return nil, shared.NewValidationError("amount", "cannot be negative")
		}
		houseID = query.HouseID
		price = func(hs *house.House, s *game.Session) resource.Bundle {
			return hs.RepairCost(query.Amount, s.Table())
		}
	case *GetHarvestCostQuery:
		houseID = query.HouseID
		price = func(hs *house.House, s *game.Session) resource.Bundle {
			return hs.HarvestCost(query.Selector, s.Table())
		}
	default:
		return nil, fmt.Errorf("invalid request type: expected *GetRepairCostQuery or *GetHarvestCostQuery")
	}
	if err := game.ValidateRequest(request); err != nil {
		return nil, err
	}

	var response *CostResponse
	err := h.runner.View(ctx, shared.Address{}, func(s *game.Session) error {
		hs, err := s.House(house.ID(houseID))
		if err != nil {
			return err
		}
		response = &CostResponse{HouseID: houseID, Cost: price(hs, s)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
