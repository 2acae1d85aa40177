package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// HireHandymanCommand restores a house to max durability for land token
type HireHandymanCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// HireHandymanResponse reports the restored durability and the price paid
type HireHandymanResponse struct {
	HouseID    int64
	Durability decimal.Decimal
	Price      decimal.Decimal
}

// HireHandymanHandler handles the HireHandyman command
type HireHandymanHandler struct {
	runner *game.Runner
}

// NewHireHandymanHandler creates a new HireHandymanHandler
func NewHireHandymanHandler(runner *game.Runner) *HireHandymanHandler {
	return &HireHandymanHandler{runner: runner}
}

// Handle executes the HireHandyman command
func (h *HireHandymanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*HireHandymanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *HireHandymanCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *HireHandymanResponse
	err = h.runner.Execute(ctx, "hireHandyman", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "hireHandyman")
		if err != nil {
			return err
		}
		price, err := hs.HireHandyman(s.Now(), s.Table())
		if err != nil {
			return err
		}
		wallet, err := s.Wallet(actor)
		if err != nil {
			return err
		}
		if err := wallet.Debit(token.LandToken, price, s.Now()); err != nil {
			return err
		}
		durability := hs.Durability(s.Now(), s.Table())
		s.EmitHouse(event.HandymanHired, id, map[string]interface{}{
			"price":      price.String(),
			"durability": durability.String(),
		})
		response = &HireHandymanResponse{HouseID: cmd.HouseID, Durability: durability, Price: price}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
