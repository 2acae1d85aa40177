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
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// HarvestCommand claims the selected pending rewards of a house. Selector index 0 is the
// token reward; 1..4 are lumber, brick, concrete and steel.
type HarvestCommand struct {
	Actor    string `validate:"required"`
	HouseID  int64  `validate:"gte=0"`
	Selector resource.Selector
}

// HarvestResponse reports what the harvest moved
type HarvestResponse struct {
	HouseID   int64
	Resources resource.Bundle
	Token     decimal.Decimal
	Cost      resource.Bundle
	Lifetime  decimal.Decimal
	Dead      bool
}

// HarvestHandler handles the Harvest command
type HarvestHandler struct {
	runner *game.Runner
}

// NewHarvestHandler creates a new HarvestHandler
func NewHarvestHandler(runner *game.Runner) *HarvestHandler {
	return &HarvestHandler{runner: runner}
}

// Handle executes the Harvest command. Resources are credited before the power fee is
// charged; land token goes to the owner's wallet.
func (h *HarvestHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*HarvestCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *HarvestCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *HarvestResponse
	err = h.runner.Execute(ctx, "harvest", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "harvest")
		if err != nil {
			return err
		}
		res, err := hs.Harvest(cmd.Selector, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Credit(actor, ledger.EntryTypeHarvest, &id, res.Resources, "harvest"); err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeHarvestFee, &id, res.Cost, "harvest fee"); err != nil {
			return err
		}
		if res.Token.IsPositive() {
			wallet, err := s.Wallet(actor)
			if err != nil {
				return err
			}
			if err := wallet.Credit(token.LandToken, res.Token, s.Now()); err != nil {
				return err
			}
		}
		s.NoteHarvest(hs, res)
		s.EmitHouse(event.Harvested, id, map[string]interface{}{
			"selector":  cmd.Selector,
			"resources": bundleData(res.Resources),
			"token":     res.Token.String(),
			"cost":      bundleData(res.Cost),
		})
		if res.Died {
			s.EmitHouse(event.HouseDied, id, map[string]interface{}{
				"lifetime": hs.LifetimeHarvested().String(),
			})
		}
		response = &HarvestResponse{
			HouseID:   cmd.HouseID,
			Resources: res.Resources,
			Token:     res.Token,
			Cost:      res.Cost,
			Lifetime:  hs.LifetimeHarvested(),
			Dead:      hs.IsDead(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
