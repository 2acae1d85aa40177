package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// TransferHouseCommand hands a house to another owner
type TransferHouseCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	To      string `validate:"required"`
}

// TransferHouseHandler handles the TransferHouse command
type TransferHouseHandler struct {
	runner *game.Runner
}

// NewTransferHouseHandler creates a new TransferHouseHandler
func NewTransferHouseHandler(runner *game.Runner) *TransferHouseHandler {
	return &TransferHouseHandler{runner: runner}
}

// Handle executes the TransferHouse command. Both owners are settled before the house
// changes hands, so production up to now belongs to the previous owner.
func (h *TransferHouseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TransferHouseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TransferHouseCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}
	to, err := shared.NewAddress(cmd.To)
	if err != nil {
		return nil, err
	}

	var response *HouseResponse
	err = h.runner.Execute(ctx, "transferHouse", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "transferHouse")
		if err != nil {
			return err
		}
		position, err := s.Position(id)
		if err != nil {
			return err
		}
		if position.IsStaked() {
			return shared.NewDomainError(shared.KindStateConflict, "please unstake asset tokens")
		}
		if err := s.SettleOwner(to); err != nil {
			return err
		}
		if err := hs.TransferTo(to); err != nil {
			return err
		}
		s.EmitHouse(event.HouseTransferred, id, map[string]interface{}{
			"from": actor.String(),
			"to":   to.String(),
		})
		response = &HouseResponse{HouseID: cmd.HouseID, Owner: to.String(), Name: hs.Name()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
