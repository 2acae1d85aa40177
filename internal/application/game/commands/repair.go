package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// RepairCommand raises durability by an amount
type RepairCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  decimal.Decimal
}

// RepairResponse reports durability after the repair
type RepairResponse struct {
	HouseID    int64
	Durability decimal.Decimal
	Cost       resource.Bundle
}

// RepairHandler handles the Repair command
type RepairHandler struct {
	runner *game.Runner
}

// NewRepairHandler creates a new RepairHandler
func NewRepairHandler(runner *game.Runner) *RepairHandler {
	return &RepairHandler{runner: runner}
}

// Handle executes the Repair command
func (h *RepairHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RepairCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RepairCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *RepairResponse
	err = h.runner.Execute(ctx, "repair", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "repair")
		if err != nil {
			return err
		}
		cost, err := hs.Repair(cmd.Amount, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeRepair, &id, cost, fmt.Sprintf("repair %s points", cmd.Amount)); err != nil {
			return err
		}
		durability := hs.Durability(s.Now(), s.Table())
		s.EmitHouse(event.Repaired, id, map[string]interface{}{
			"amount":     cmd.Amount.String(),
			"durability": durability.String(),
			"cost":       bundleData(cost),
		})
		response = &RepairResponse{HouseID: cmd.HouseID, Durability: durability, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
