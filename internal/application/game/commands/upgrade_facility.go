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

// UpgradeFacilityCommand raises one facility of a house by a level
type UpgradeFacilityCommand struct {
	Actor    string `validate:"required"`
	HouseID  int64  `validate:"gte=0"`
	Facility string `validate:"required"`
}

// UpgradeFacilityResponse reports the new level and what it cost
type UpgradeFacilityResponse struct {
	HouseID  int64
	Facility string
	Level    int
	Cost     resource.Bundle
}

// UpgradeFacilityHandler handles the UpgradeFacility command
type UpgradeFacilityHandler struct {
	runner *game.Runner
}

// NewUpgradeFacilityHandler creates a new UpgradeFacilityHandler
func NewUpgradeFacilityHandler(runner *game.Runner) *UpgradeFacilityHandler {
	return &UpgradeFacilityHandler{runner: runner}
}

// Handle executes the UpgradeFacility command
func (h *UpgradeFacilityHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpgradeFacilityCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpgradeFacilityCommand")
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

	var response *UpgradeFacilityResponse
	err = h.runner.Execute(ctx, "upgradeFacility", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "upgradeFacility")
		if err != nil {
			return err
		}
		cost, err := hs.UpgradeFacility(kind, s.Now(), s.Table())
		if err != nil {
			return err
		}
		level := hs.Level(kind)
		desc := fmt.Sprintf("upgrade %s to level %d", kind.FacilityName(), level)
		if err := s.Debit(actor, ledger.EntryTypeUpgrade, &id, cost, desc); err != nil {
			return err
		}
		s.EmitHouse(event.FacilityUpgraded, id, map[string]interface{}{
			"facility": kind.FacilityName(),
			"level":    level,
			"cost":     bundleData(cost),
		})
		response = &UpgradeFacilityResponse{HouseID: cmd.HouseID, Facility: kind.FacilityName(), Level: level, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
