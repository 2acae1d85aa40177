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

// GatherLumberCommand trades power for lumber within the house's gather limit
type GatherLumberCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  int    `validate:"gte=1"`
}

// GatherLumberResponse reports the trade and what is left of the window's limit
type GatherLumberResponse struct {
	HouseID  int64
	Cost     resource.Bundle
	Gathered int
	Limit    int
}

// GatherLumberHandler handles the GatherLumber command
type GatherLumberHandler struct {
	runner *game.Runner
}

// NewGatherLumberHandler creates a new GatherLumberHandler
func NewGatherLumberHandler(runner *game.Runner) *GatherLumberHandler {
	return &GatherLumberHandler{runner: runner}
}

// Handle executes the GatherLumber command
func (h *GatherLumberHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*GatherLumberCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GatherLumberCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *GatherLumberResponse
	err = h.runner.Execute(ctx, "gatherLumberWithPower", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "gatherLumberWithPower")
		if err != nil {
			return err
		}
		cost, gained, err := hs.GatherLumber(cmd.Amount, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Exchange(actor, ledger.EntryTypeGatherLumber, &id, cost, gained, "gather lumber"); err != nil {
			return err
		}
		gathered := hs.GatheredInWindow(s.Now(), s.Table())
		s.EmitHouse(event.LumberGathered, id, map[string]interface{}{
			"amount":   cmd.Amount,
			"gathered": gathered,
			"cost":     bundleData(cost),
		})
		response = &GatherLumberResponse{
			HouseID:  cmd.HouseID,
			Cost:     cost,
			Gathered: gathered,
			Limit:    hs.GatherLimit(s.Now(), s.Table()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
