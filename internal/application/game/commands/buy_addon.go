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

// BuyAddonCommand buys an addon for a house
type BuyAddonCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	AddonID int    `validate:"gte=1"`
}

// BuyAddonResponse reports the purchase
type BuyAddonResponse struct {
	HouseID int64
	AddonID int
	Name    string
	Cost    resource.Bundle
}

// BuyAddonHandler handles the BuyAddon command
type BuyAddonHandler struct {
	runner *game.Runner
}

// NewBuyAddonHandler creates a new BuyAddonHandler
func NewBuyAddonHandler(runner *game.Runner) *BuyAddonHandler {
	return &BuyAddonHandler{runner: runner}
}

// Handle executes the BuyAddon command
func (h *BuyAddonHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyAddonCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyAddonCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *BuyAddonResponse
	err = h.runner.Execute(ctx, "buyAddon", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "buyAddon")
		if err != nil {
			return err
		}
		addonID := settings.AddonID(cmd.AddonID)
		cost, err := hs.BuyAddon(addonID, s.Now(), s.Table())
		if err != nil {
			return err
		}
		spec, _ := s.Table().Addon(addonID)
		if err := s.Debit(actor, ledger.EntryTypeAddonPurchase, &id, cost, "buy addon "+spec.Name); err != nil {
			return err
		}
		s.EmitHouse(event.AddonBought, id, map[string]interface{}{
			"addon_id": cmd.AddonID,
			"name":     spec.Name,
			"cost":     bundleData(cost),
		})
		response = &BuyAddonResponse{HouseID: cmd.HouseID, AddonID: cmd.AddonID, Name: spec.Name, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
