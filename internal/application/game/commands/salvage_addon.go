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
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

// SalvageAddonCommand removes an addon and everything built on it
type SalvageAddonCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	AddonID int    `validate:"gte=1"`
}

// SalvageAddonResponse reports the refund and the addons removed along with the target
type SalvageAddonResponse struct {
	HouseID  int64
	AddonID  int
	Refund   resource.Bundle
	Cascaded []int
}

// SalvageAddonHandler handles the SalvageAddon command
type SalvageAddonHandler struct {
	runner *game.Runner
}

// NewSalvageAddonHandler creates a new SalvageAddonHandler
func NewSalvageAddonHandler(runner *game.Runner) *SalvageAddonHandler {
	return &SalvageAddonHandler{runner: runner}
}

// Handle executes the SalvageAddon command
func (h *SalvageAddonHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SalvageAddonCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SalvageAddonCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}

	var response *SalvageAddonResponse
	err = h.runner.Execute(ctx, "salvageAddon", actor, func(s *game.Session) error {
		id := house.ID(cmd.HouseID)
		hs, err := s.OwnedHouse(id, "salvageAddon")
		if err != nil {
			return err
		}
		refund, cascaded, err := hs.SalvageAddon(settings.AddonID(cmd.AddonID), s.Table())
		if err != nil {
			return err
		}
		if err := s.Credit(actor, ledger.EntryTypeAddonRefund, &id, refund, fmt.Sprintf("salvage addon %d", cmd.AddonID)); err != nil {
			return err
		}
		removed := make([]int, len(cascaded))
		for i, a := range cascaded {
			removed[i] = int(a)
		}
		s.EmitHouse(event.AddonSalvaged, id, map[string]interface{}{
			"addon_id": cmd.AddonID,
			"refund":   bundleData(refund),
			"cascaded": removed,
		})
		response = &SalvageAddonResponse{HouseID: cmd.HouseID, AddonID: cmd.AddonID, Refund: refund, Cascaded: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
