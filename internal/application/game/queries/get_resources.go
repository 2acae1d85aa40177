package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// GetResourcesQuery reads an owner's balances with every house settled to now
type GetResourcesQuery struct {
	Owner string `validate:"required"`
}

// GetResourcesResponse carries the owner's resource and token balances
type GetResourcesResponse struct {
	Owner      string
	Balances   resource.Bundle
	PowerLimit decimal.Decimal
	LandToken  decimal.Decimal
	AssetToken decimal.Decimal
}

// GetResourcesHandler handles the GetResources query
type GetResourcesHandler struct {
	runner *game.Runner
}

// NewGetResourcesHandler creates a new GetResourcesHandler
func NewGetResourcesHandler(runner *game.Runner) *GetResourcesHandler {
	return &GetResourcesHandler{runner: runner}
}

// Handle executes the GetResources query
func (h *GetResourcesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetResourcesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetResourcesQuery")
	}
	if err := game.ValidateRequest(query); err != nil {
		return nil, err
	}
	owner, err := shared.NewAddress(query.Owner)
	if err != nil {
		return nil, err
	}

	var response *GetResourcesResponse
	err = h.runner.View(ctx, owner, func(s *game.Session) error {
		if err := s.SettleOwner(owner); err != nil {
			return err
		}
		account, err := s.Account(owner)
		if err != nil {
			return err
		}
		limit, err := s.PowerLimit(owner)
		if err != nil {
			return err
		}
		wallet, err := s.Wallet(owner)
		if err != nil {
			return err
		}
		response = &GetResourcesResponse{
			Owner:      owner.String(),
			Balances:   account.Balances(),
			PowerLimit: limit,
			LandToken:  wallet.Balance(token.LandToken),
			AssetToken: wallet.Balance(token.AssetToken),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
