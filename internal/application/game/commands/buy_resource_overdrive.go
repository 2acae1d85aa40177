package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// BuyResourceOverdriveCommand boosts one non-power facility for a while
type BuyResourceOverdriveCommand struct {
	Actor    string `validate:"required"`
	HouseID  int64  `validate:"gte=0"`
	Facility string `validate:"required"`
}

// BuyResourceOverdriveResponse reports when the boost ends
type BuyResourceOverdriveResponse struct {
	HouseID  int64
	Facility string
	Until    time.Time
	Cost     resource.Bundle
}

// BuyResourceOverdriveHandler handles the BuyResourceOverdrive command
type BuyResourceOverdriveHandler struct {
	runner *game.Runner
}

// NewBuyResourceOverdriveHandler creates a new BuyResourceOverdriveHandler
func NewBuyResourceOverdriveHandler(runner *game.Runner) *BuyResourceOverdriveHandler {
	return &BuyResourceOverdriveHandler{runner: runner}
}

// Handle executes the BuyResourceOverdrive command
func (h *BuyResourceOverdriveHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyResourceOverdriveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyResourceOverdriveCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}
	kind, err := parseFacility(cmd.Facility)
	if err != nil {
		return nil, err
	}

	var response *BuyResourceOverdriveResponse
	err = h.runner.Execute(ctx, "buyResourceOverdrive", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "buyResourceOverdrive")
		if err != nil {
			return err
		}
		cost, err := hs.BuyOverdrive(kind, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeItemPurchase, &id, cost, "overdrive "+kind.FacilityName()); err != nil {
			return err
		}
		until := hs.OverdriveUntil(kind)
		s.EmitHouse(event.OverdriveBought, id, map[string]interface{}{
			"facility": kind.FacilityName(),
			"until":    until,
			"cost":     bundleData(cost),
		})
		response = &BuyResourceOverdriveResponse{HouseID: cmd.HouseID, Facility: kind.FacilityName(), Until: until, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
