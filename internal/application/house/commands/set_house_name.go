package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
)

// SetHouseNameCommand renames a house
type SetHouseNameCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Name    string `validate:"max=64"`
}

// SetHouseNameHandler handles the SetHouseName command
type SetHouseNameHandler struct {
	runner *game.Runner
}

// NewSetHouseNameHandler creates a new SetHouseNameHandler
func NewSetHouseNameHandler(runner *game.Runner) *SetHouseNameHandler {
	return &SetHouseNameHandler{runner: runner}
}

// Handle executes the SetHouseName command
func (h *SetHouseNameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SetHouseNameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetHouseNameCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	err = h.runner.Execute(ctx, "setHouseName", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "setHouseName")
		if err != nil {
			return err
		}
		if err := hs.SetName(cmd.Name); err != nil {
			return err
		}
		s.EmitHouse(event.HouseRenamed, id, map[string]interface{}{"name": cmd.Name})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &HouseResponse{HouseID: cmd.HouseID, Name: cmd.Name}, nil
}

// HouseResponse identifies a house after a registry change
type HouseResponse struct {
	HouseID int64
	Owner   string
	Name    string
}
