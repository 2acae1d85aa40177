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

// BurnLumberCommand converts lumber into power at the fireplace
type BurnLumberCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  decimal.Decimal
}

// BurnLumberResponse reports the conversion
type BurnLumberResponse struct {
	HouseID int64
	Lumber  decimal.Decimal
	Power   decimal.Decimal
}

// BurnLumberHandler handles the BurnLumber command
type BurnLumberHandler struct {
	runner *game.Runner
}

// NewBurnLumberHandler creates a new BurnLumberHandler
func NewBurnLumberHandler(runner *game.Runner) *BurnLumberHandler {
	return &BurnLumberHandler{runner: runner}
}

// Handle executes the BurnLumber command. The power produced must fit under the owner's
// power limit as a whole.
func (h *BurnLumberHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BurnLumberCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BurnLumberCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *BurnLumberResponse
	err = h.runner.Execute(ctx, "burnLumberToMakePower", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "burnLumberToMakePower")
		if err != nil {
			return err
		}
		cost, power, err := hs.BurnLumber(cmd.Amount, s.Table())
		if err != nil {
			return err
		}
		if err := s.CheckPowerHeadroom(actor, power); err != nil {
			return err
		}
		gained := resource.Of(resource.Power, power)
		if err := s.Exchange(actor, ledger.EntryTypeBurnLumber, &id, cost, gained, "burn lumber"); err != nil {
			return err
		}
		s.EmitHouse(event.LumberBurned, id, map[string]interface{}{
			"lumber": cmd.Amount.String(),
			"power":  power.String(),
		})
		response = &BurnLumberResponse{HouseID: cmd.HouseID, Lumber: cmd.Amount, Power: power}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
