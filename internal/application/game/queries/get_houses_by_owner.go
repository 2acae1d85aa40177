package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GetHousesByOwnerQuery lists an owner's houses as they stand now
type GetHousesByOwnerQuery struct {
	Owner string `validate:"required"`
}

// GetHousesByOwnerResponse carries the owner's settled houses in id order
type GetHousesByOwnerResponse struct {
	Houses []*HouseDTO
}

// GetHousesByOwnerHandler handles the GetHousesByOwner query
type GetHousesByOwnerHandler struct {
	runner *game.Runner
}

// NewGetHousesByOwnerHandler creates a new GetHousesByOwnerHandler
func NewGetHousesByOwnerHandler(runner *game.Runner) *GetHousesByOwnerHandler {
	return &GetHousesByOwnerHandler{runner: runner}
}

// Handle executes the GetHousesByOwner query
func (h *GetHousesByOwnerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetHousesByOwnerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetHousesByOwnerQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}
	owner, err := shared.NewAddress(query.Owner)
	if err != nil {
		return nil, err
	}

	response := &GetHousesByOwnerResponse{Houses: []*HouseDTO{}}
	err = h.runner.View(ctx, owner, func(s *game.Session) error {
		houses, err := s.HousesOf(owner)
		if err != nil {
			return err
		}
		for _, hs := range houses {
			staked, err := s.StakedAmount(hs.ID())
			if err != nil {
				return err
			}
			response.Houses = append(response.Houses, toHouseDTO(hs, staked, s.Now(), s.Table()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
