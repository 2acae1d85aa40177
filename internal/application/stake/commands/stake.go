package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

// StakeCommand deposits asset token against a house
type StakeCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  decimal.Decimal
}

// UnstakeCommand withdraws asset token from a house
type UnstakeCommand struct {
	Actor   string `validate:"required"`
	HouseID int64  `validate:"gte=0"`
	Amount  decimal.Decimal
}

// StakeResponse reports the house position and the owner's free asset token
type StakeResponse struct {
	HouseID int64
	Staked  decimal.Decimal
	Wallet  decimal.Decimal
}

// StakeHandler handles the Stake and Unstake commands. The house's token reward is
// settled under the old stake before the amount changes.
type StakeHandler struct {
	runner *game.Runner
}

// NewStakeHandler creates a new StakeHandler
func NewStakeHandler(runner *game.Runner) *StakeHandler {
	return &StakeHandler{runner: runner}
}

// Handle executes a Stake or Unstake command
func (h *StakeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	var (
		actorRaw string
		houseID  int64
		amount   decimal.Decimal
		deposit  bool
	)
	switch cmd := request.(type) {
	case *StakeCommand:
		actorRaw, houseID, amount, deposit = cmd.Actor, cmd.HouseID, cmd.Amount, true
	case *UnstakeCommand:
		actorRaw, houseID, amount = cmd.Actor, cmd.HouseID, cmd.Amount
	default:
		return nil, fmt.Errorf("invalid request type: expected *StakeCommand or *UnstakeCommand")
	}
	if err := game.ValidateRequest(request); err != nil {
		return nil, err
	}
	actor, err := game.ParseActor(actorRaw)
	if err != nil {
		return nil, err
	}

	op := "unstake"
	if deposit {
		op = "stake"
	}

	var response *StakeResponse
	err = h.runner.Execute(ctx, op, actor, func(s *game.Session) error {
		id := house.ID(houseID)
		if _, err := s.OwnedHouse(id, op); err != nil {
			return err
		}
		position, err := s.Position(id)
		if err != nil {
			return err
		}
		wallet, err := s.Wallet(actor)
		if err != nil {
			return err
		}
		if deposit {
			if err := position.Deposit(amount, s.Now()); err != nil {
				return err
			}
			if err := wallet.Debit(token.AssetToken, amount, s.Now()); err != nil {
				return err
			}
			s.EmitHouse(event.Staked, id, map[string]interface{}{"amount": amount.String()})
		} else {
			if err := position.Withdraw(amount, s.Now()); err != nil {
				return err
			}
			if err := wallet.Credit(token.AssetToken, amount, s.Now()); err != nil {
				return err
			}
			s.EmitHouse(event.Unstaked, id, map[string]interface{}{"amount": amount.String()})
		}
		response = &StakeResponse{HouseID: houseID, Staked: position.Amount(), Wallet: wallet.Balance(token.AssetToken)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
