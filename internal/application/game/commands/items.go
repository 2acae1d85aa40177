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

// BuyFireplaceCommand unlocks burning lumber into power
type BuyFireplaceCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// BuyHarvesterCommand lowers the harvest cost of a house
type BuyHarvesterCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// BuyConcreteFoundationCommand lowers the durability decay of a house
type BuyConcreteFoundationCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// ItemResponse reports a one-off item purchase
type ItemResponse struct {
	HouseID int64
	Item    string
	Cost    resource.Bundle
}

// itemPurchase is the house method buying one item
type itemPurchase func(s *game.Session, hs *house.House) (resource.Bundle, error)

// BuyItemHandler handles the one-off item purchases. Each item has its own command type;
// the handler is registered once per type.
type BuyItemHandler struct {
	runner *game.Runner
}

// NewBuyItemHandler creates a new BuyItemHandler
func NewBuyItemHandler(runner *game.Runner) *BuyItemHandler {
	return &BuyItemHandler{runner: runner}
}

// Handle executes BuyFireplace, BuyHarvester and BuyConcreteFoundation commands
func (h *BuyItemHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	var (
		actorRaw string
		houseID  int64
		op       string
		item     string
		typ      event.Type
		buy      itemPurchase
	)
	switch cmd := request.(type) {
	case *BuyFireplaceCommand:
		actorRaw, houseID, op, item, typ = cmd.Actor, cmd.HouseID, "buyFireplace", "fireplace", event.FireplaceBought
		buy = func(s *game.Session, hs *house.House) (resource.Bundle, error) { return hs.BuyFireplace(s.Table()) }
	case *BuyHarvesterCommand:
		actorRaw, houseID, op, item, typ = cmd.Actor, cmd.HouseID, "buyHarvester", "harvester", event.HarvesterBought
		buy = func(s *game.Session, hs *house.House) (resource.Bundle, error) { return hs.BuyHarvester(s.Table()) }
	case *BuyConcreteFoundationCommand:
		actorRaw, houseID, op, item, typ = cmd.Actor, cmd.HouseID, "buyConcreteFoundation", "concrete foundation", event.FoundationBought
		buy = func(s *game.Session, hs *house.House) (resource.Bundle, error) {
			return hs.BuyConcreteFoundation(s.Now(), s.Table())
		}
	default:
		return nil, fmt.Errorf("invalid request type: expected an item purchase command, got %T", request)
	}
	if err := game.ValidateRequest(request); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(actorRaw)
	if err != nil {
		return nil, err
	}

	var response *ItemResponse
	err = h.runner.Execute(ctx, op, actor, func(s *game.Session) error {
		id := house.ID(houseID)
		hs, err := s.OwnedHouse(id, op)
		if err != nil {
			return err
		}
		cost, err := buy(s, hs)
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeItemPurchase, &id, cost, "buy "+item); err != nil {
			return err
		}
		s.EmitHouse(typ, id, map[string]interface{}{"cost": bundleData(cost)})
		response = &ItemResponse{HouseID: houseID, Item: item, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
