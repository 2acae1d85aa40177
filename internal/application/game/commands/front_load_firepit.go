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
)

// FrontLoadFirepitCommand stocks the firepit with lumber that burns on its own
type FrontLoadFirepitCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  decimal.Decimal
}

// FrontLoadFirepitResponse reports the firepit stock after loading
type FrontLoadFirepitResponse struct {
	HouseID    int64
	Stocked    decimal.Decimal
	RemainDays int64
}

// FrontLoadFirepitHandler handles the FrontLoadFirepit command
type FrontLoadFirepitHandler struct {
	runner *game.Runner
}

// NewFrontLoadFirepitHandler creates a new FrontLoadFirepitHandler
func NewFrontLoadFirepitHandler(runner *game.Runner) *FrontLoadFirepitHandler {
	return &FrontLoadFirepitHandler{runner: runner}
}

// Handle executes the FrontLoadFirepit command
func (h *FrontLoadFirepitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*FrontLoadFirepitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FrontLoadFirepitCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *FrontLoadFirepitResponse
	err = h.runner.Execute(ctx, "frontLoadFirepit", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "frontLoadFirepit")
		if err != nil {
			return err
		}
		cost, err := hs.FrontLoadFirepit(cmd.Amount, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := s.Debit(actor, ledger.EntryTypeFirepitLoad, &id, cost, "front-load firepit"); err != nil {
			return err
		}
		s.EmitHouse(event.FirepitLoaded, id, map[string]interface{}{
			"lumber":  cmd.Amount.String(),
			"stocked": hs.FirepitLumber().String(),
		})
		response = &FrontLoadFirepitResponse{HouseID: cmd.HouseID, Stocked: hs.FirepitLumber(), RemainDays: hs.FirepitRemainDays()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
