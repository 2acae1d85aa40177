package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
)

// ActivateHouseCommand starts a minted house producing
type ActivateHouseCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
}

// ActivateHouseResponse reports when the house was activated
type ActivateHouseResponse struct {
	HouseID     int64
	ActivatedAt time.Time
}

// ActivateHouseHandler handles the ActivateHouse command
type ActivateHouseHandler struct {
	runner *game.Runner
}

// NewActivateHouseHandler creates a new ActivateHouseHandler
func NewActivateHouseHandler(runner *game.Runner) *ActivateHouseHandler {
	return &ActivateHouseHandler{runner: runner}
}

// Handle executes the ActivateHouse command
func (h *ActivateHouseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ActivateHouseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ActivateHouseCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *ActivateHouseResponse
	err = h.runner.Execute(ctx, "activateHouse", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "activateHouse")
		if err != nil {
			return err
		}
		if err := hs.Activate(s.Now()); err != nil {
			return err
		}
		s.EmitHouse(event.HouseActivated, id, nil)
		response = &ActivateHouseResponse{HouseID: cmd.HouseID, ActivatedAt: hs.ActivatedAt()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
