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

// FortifyCommand applies a fortification boost of one material
type FortifyCommand struct {
	Actor    string `validate:"required"`
	HouseID  int64  `validate:"gte=0"`
	Material string `validate:"required"`
}

// FortifyResponse reports durability after the boost
type FortifyResponse struct {
	HouseID       int64
	Material      string
	Durability    decimal.Decimal
	MaxDurability decimal.Decimal
	Cost          resource.Bundle
}

// FortifyHandler handles the Fortify command
type FortifyHandler struct {
	runner *game.Runner
}

// NewFortifyHandler creates a new FortifyHandler
func NewFortifyHandler(runner *game.Runner) *FortifyHandler {
	return &FortifyHandler{runner: runner}
}

// Handle executes the Fortify command
func (h *FortifyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*FortifyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FortifyCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}
	material, err := parseMaterial(cmd.Material)
	if err != nil {
		return nil, err
	}

	var response *FortifyResponse
	err = h.runner.Execute(ctx, "fortify", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "fortify")
		if err != nil {
			return err
		}
		cost, err := hs.Fortify(material, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeFortify, &id, cost, "fortify with "+material.String()); err != nil {
			return err
		}
		durability := hs.Durability(s.Now(), s.Table())
		ceiling := hs.MaxDurability(s.Now(), s.Table())
		s.EmitHouse(event.Fortified, id, map[string]interface{}{
			"material":       material.String(),
			"durability":     durability.String(),
			"max_durability": ceiling.String(),
		})
		response = &FortifyResponse{
			HouseID:       cmd.HouseID,
			Material:      material.String(),
			Durability:    durability,
			MaxDurability: ceiling,
			Cost:          cost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
