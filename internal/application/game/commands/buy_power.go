package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// BuyPowerWithLandtokenCommand pays land token for power
type BuyPowerWithLandtokenCommand struct {
	Actor  string `validate:"required"`
	Amount decimal.Decimal
}

// BuyPowerWithLandtokenResponse reports the power bought
type BuyPowerWithLandtokenResponse struct {
	Paid  decimal.Decimal
	Power decimal.Decimal
}

// BuyPowerWithLandtokenHandler handles the BuyPowerWithLandtoken command
type BuyPowerWithLandtokenHandler struct {
	runner *game.Runner
}

// NewBuyPowerWithLandtokenHandler creates a new BuyPowerWithLandtokenHandler
func NewBuyPowerWithLandtokenHandler(runner *game.Runner) *BuyPowerWithLandtokenHandler {
	return &BuyPowerWithLandtokenHandler{runner: runner}
}

// Handle executes the BuyPowerWithLandtoken command. The owner's houses are settled first
// so the power limit is checked against the current balance.
func (h *BuyPowerWithLandtokenHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyPowerWithLandtokenCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyPowerWithLandtokenCommand")
	}
	if err := game.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(cmd.Actor)
	if err != nil {
		return nil, err
	}
	if !cmd.Amount.IsPositive() {
		return nil, shared.NewDomainError(shared.KindInvalidArgument, "no amount paid")
	}

	var response *BuyPowerWithLandtokenResponse
	err = h.runner.Execute(ctx, "buyPowerWithLandtoken", actor, func(s *game.Session) error {
		if err := s.SettleOwner(actor); err != nil {
			return err
		}
		power := shared.Trunc(cmd.Amount.Mul(s.Table().LandToken.PowerPerLandToken))
		if err := s.CheckPowerHeadroom(actor, power); err != nil {
			return err
		}
		wallet, err := s.Wallet(actor)
		if err != nil {
			return err
		}
		if err := wallet.Debit(token.LandToken, cmd.Amount, s.Now()); err != nil {
			return err
		}
		if err := s.Credit(actor, ledger.EntryTypePowerPurchase, nil, resource.Of(resource.Power, power), "buy power with land token"); err != nil {
			return err
		}
		s.Emit(event.PowerBought, map[string]interface{}{
			"paid":  cmd.Amount.String(),
			"power": power.String(),
		})
		response = &BuyPowerWithLandtokenResponse{Paid: cmd.Amount, Power: power}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
