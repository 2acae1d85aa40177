package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// FertilizeGardenCommand restarts the expiry window of an active garden
type FertilizeGardenCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// FertilizeGardenResponse reports what fertilizing cost
type FertilizeGardenResponse struct {
	HouseID int64
	Cost    resource.Bundle
}

// FertilizeGardenHandler handles the FertilizeGarden command
type FertilizeGardenHandler struct {
	runner *game.Runner
}

// NewFertilizeGardenHandler creates a new FertilizeGardenHandler
func NewFertilizeGardenHandler(runner *game.Runner) *FertilizeGardenHandler {
	return &FertilizeGardenHandler{runner: runner}
}

// Handle executes the FertilizeGarden command
func (h *FertilizeGardenHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*FertilizeGardenCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FertilizeGardenCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *FertilizeGardenResponse
	err = h.runner.Execute(ctx, "fertilizeGarden", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "fertilizeGarden")
		if err != nil {
			return err
		}
		cost, err := hs.FertilizeGarden(s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeItemPurchase, &id, cost, "fertilize garden"); err != nil {
			return err
		}
		s.EmitHouse(event.GardenFertilized, id, map[string]interface{}{"cost": bundleData(cost)})
		response = &FertilizeGardenResponse{HouseID: cmd.HouseID, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
