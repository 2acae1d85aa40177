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
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

// BuyToolshedCommand buys a toolshed type for a house
type BuyToolshedCommand struct {
	Actor      string `validate:"required"`
	HouseID    int64  `validate:"gte=0"`
	ToolshedID int    `validate:"gte=1"`
}

// SwitchToolshedCommand moves the active toolshed slot
type SwitchToolshedCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	From    int    `validate:"gte=1"`
	To      int    `validate:"gte=1"`
}

// ToolshedResponse reports the toolshed state after a purchase or switch
type ToolshedResponse struct {
	HouseID int64
	Active  int
	Owned   []int
	Cost    resource.Bundle
}

// BuyToolshedHandler handles the BuyToolshed command
type BuyToolshedHandler struct {
	runner *game.Runner
}

// NewBuyToolshedHandler creates a new BuyToolshedHandler
func NewBuyToolshedHandler(runner *game.Runner) *BuyToolshedHandler {
	return &BuyToolshedHandler{runner: runner}
}

// Handle executes the BuyToolshed command
func (h *BuyToolshedHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyToolshedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyToolshedCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *ToolshedResponse
	err = h.runner.Execute(ctx, "buyToolshed", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "buyToolshed")
		if err != nil {
			return err
		}
		cost, err := hs.BuyToolshed(settings.ToolshedID(cmd.ToolshedID), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeToolshed, &id, cost, fmt.Sprintf("buy toolshed %d", cmd.ToolshedID)); err != nil {
			return err
		}
		s.EmitHouse(event.ToolshedBought, id, map[string]interface{}{
			"toolshed_id": cmd.ToolshedID,
			"active":      int(hs.ActiveToolshed()),
			"cost":        bundleData(cost),
		})
		response = toolshedResponse(hs, cost)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SwitchToolshedHandler handles the SwitchToolshed command
type SwitchToolshedHandler struct {
	runner *game.Runner
}

// NewSwitchToolshedHandler creates a new SwitchToolshedHandler
func NewSwitchToolshedHandler(runner *game.Runner) *SwitchToolshedHandler {
	return &SwitchToolshedHandler{runner: runner}
}

// Handle executes the SwitchToolshed command. Production up to now was already settled
// under the old toolshed when the house was loaded.
func (h *SwitchToolshedHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SwitchToolshedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SwitchToolshedCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *ToolshedResponse
	err = h.runner.Execute(ctx, "switchToolshed", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "switchToolshed")
		if err != nil {
			return err
		}
		cost, err := hs.SwitchToolshed(settings.ToolshedID(cmd.From), settings.ToolshedID(cmd.To), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeToolshed, &id, cost, fmt.Sprintf("switch toolshed %d to %d", cmd.From, cmd.To)); err != nil {
			return err
		}
		s.EmitHouse(event.ToolshedSwitched, id, map[string]interface{}{
			"from": cmd.From,
			"to":   cmd.To,
			"cost": bundleData(cost),
		})
		response = toolshedResponse(hs, cost)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func toolshedResponse(hs *house.House, cost resource.Bundle) *ToolshedResponse {
	owned := hs.Toolsheds()
	ids := make([]int, len(owned))
	for i, t := range owned {
		ids[i] = int(t)
	}
	return &ToolshedResponse{HouseID: int64(hs.ID()), Active: int(hs.ActiveToolshed()), Owned: ids, Cost: cost}
}
