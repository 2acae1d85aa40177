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

// MintHouseCommand creates an inactive house for an owner. Admin only.
type MintHouseCommand struct {
	Actor string `validate:"required"`
	Owner string `validate:"required"`
	Rare  bool
	Name  string `validate:"max=64"`
}

// MintHouseResponse carries the new house id
type MintHouseResponse struct {
	HouseID int64
	Owner   string
	Rare    bool
}

// MintHouseHandler handles the MintHouse command
type MintHouseHandler struct {
	runner *game.Runner
}

// NewMintHouseHandler creates a new MintHouseHandler
func NewMintHouseHandler(runner *game.Runner) *MintHouseHandler {
	return &MintHouseHandler{runner: runner}
}

// Handle executes the MintHouse command. Rare houses are limited in number.
func (h *MintHouseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*MintHouseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MintHouseCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}
	owner, err := shared.NewAddress(cmd.Owner)
	if err != nil {
		return nil, err
	}

	var response *MintHouseResponse
	err = h.runner.Execute(ctx, "mintHouse", actor, func(s *game.Session) error {
		if err := s.RequireAdmin("mintHouse"); err != nil {
			return err
		}
		ctx := s.Context()
		houses := s.Stores().Houses
		if cmd.Rare {
			minted, err := houses.CountRare(ctx)
			if err != nil {
				return fmt.Errorf("failed to count rare houses: %w", err)
			}
			if minted >= s.Table().Minting.RareLimit {
				return shared.Errorf(shared.KindBounds, "rare house mint limit of %d reached", s.Table().Minting.RareLimit)
			}
		}
		id, err := houses.NextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate house id: %w", err)
		}
		hs, err := house.NewHouse(id, owner, cmd.Rare, s.Now(), s.Table())
		if err != nil {
			return err
		}
		if err := hs.SetName(cmd.Name); err != nil {
			return err
		}
		s.AddHouse(hs)
		s.EmitHouse(event.HouseMinted, id, map[string]interface{}{
			"owner": owner.String(),
			"rare":  cmd.Rare,
		})
		response = &MintHouseResponse{HouseID: int64(id), Owner: owner.String(), Rare: cmd.Rare}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
