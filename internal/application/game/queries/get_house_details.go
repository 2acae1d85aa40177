package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetHouseDetailsQuery reads one house as it stands now
type GetHouseDetailsQuery struct {
	HouseID int64 `validate:"gte=0"`
}

// GetHouseDetailsResponse carries the settled house
type GetHouseDetailsResponse struct {
	House *HouseDTO
}

// GetHouseDetailsHandler handles the GetHouseDetails query
type GetHouseDetailsHandler struct {
	runner *game.Runner
}

// NewGetHouseDetailsHandler creates a new GetHouseDetailsHandler
func NewGetHouseDetailsHandler(runner *game.Runner) *GetHouseDetailsHandler {
	return &GetHouseDetailsHandler{runner: runner}
}

// Handle executes the GetHouseDetails query
func (h *GetHouseDetailsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetHouseDetailsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetHouseDetailsQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}

	var response *GetHouseDetailsResponse
	err := h.runner.View(ctx, shared.Address{}, func(s *game.Session) error {
		id := house.ID(query.HouseID)
		hs, err := s.House(id)
		if err != nil {
			return err
		}
		staked, err := s.StakedAmount(id)
		if err != nil {
			return err
		}
		response = &GetHouseDetailsResponse{House: toHouseDTO(hs, staked, s.Now(), s.Table())}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
