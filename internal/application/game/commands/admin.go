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

// AddResourceByAdminCommand credits resources to an owner. Admin only.
type AddResourceByAdminCommand struct {
	Actor   string `validate:"required"`
	Owner   string `validate:"required"`
	Amounts resource.Bundle
}

// AddResourceByAdminResponse reports the owner's balances after the credit
type AddResourceByAdminResponse struct {
	Owner    string
	Balances resource.Bundle
}

// AddResourceByAdminHandler handles the AddResourceByAdmin command
type AddResourceByAdminHandler struct {
	runner *game.Runner
}

// NewAddResourceByAdminHandler creates a new AddResourceByAdminHandler
func NewAddResourceByAdminHandler(runner *game.Runner) *AddResourceByAdminHandler {
	return &AddResourceByAdminHandler{runner: runner}
}

// Handle executes the AddResourceByAdmin command
func (h *AddResourceByAdminHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AddResourceByAdminCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddResourceByAdminCommand")
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
	if cmd.Amounts.HasNegative() {
		return nil, shared.NewValidationError("amounts", "cannot be negative")
	}

	var response *AddResourceByAdminResponse
	err = h.runner.Execute(ctx, "addResourceByAdmin", actor, func(s *game.Session) error {
		if err := s.RequireAdmin("addResourceByAdmin"); err != nil {
			return err
		}
		if err := s.SettleOwner(owner); err != nil {
			return err
		}
		if err := s.Credit(owner, ledger.EntryTypeAdminCredit, nil, cmd.Amounts, "admin credit"); err != nil {
			return err
		}
		account, err := s.Account(owner)
		if err != nil {
			return err
		}
		s.Emit(event.ResourcesGranted, map[string]interface{}{
			"owner":   owner.String(),
			"amounts": bundleData(cmd.Amounts),
		})
		response = &AddResourceByAdminResponse{Owner: owner.String(), Balances: account.Balances()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GrantTokensCommand credits land and asset token to an owner. Admin only; this stands in
// for the external token contracts.
type GrantTokensCommand struct {
	Actor string `validate:"required"`
	Owner string `validate:"required"`
	Land  decimal.Decimal
	Asset decimal.Decimal
}

// GrantTokensResponse reports the owner's token balances after the grant
type GrantTokensResponse struct {
	Owner string
	Land  decimal.Decimal
	Asset decimal.Decimal
}

// GrantTokensHandler handles the GrantTokens command
type GrantTokensHandler struct {
	runner *game.Runner
}

// NewGrantTokensHandler creates a new GrantTokensHandler
func NewGrantTokensHandler(runner *game.Runner) *GrantTokensHandler {
	return &GrantTokensHandler{runner: runner}
}

// Handle executes the GrantTokens command
func (h *GrantTokensHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*GrantTokensCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GrantTokensCommand")
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

	var response *GrantTokensResponse
	err = h.runner.Execute(ctx, "grantTokens", actor, func(s *game.Session) error {
		if err := s.RequireAdmin("grantTokens"); err != nil {
			return err
		}
		wallet, err := s.Wallet(owner)
		if err != nil {
			return err
		}
		if err := wallet.Credit(token.LandToken, cmd.Land, s.Now()); err != nil {
			return err
		}
		if err := wallet.Credit(token.AssetToken, cmd.Asset, s.Now()); err != nil {
			return err
		}
		s.Emit(event.TokensGranted, map[string]interface{}{
			"owner": owner.String(),
			"land":  cmd.Land.String(),
			"asset": cmd.Asset.String(),
		})
		response = &GrantTokensResponse{
			Owner: owner.String(),
			Land:  wallet.Balance(token.LandToken),
			Asset: wallet.Balance(token.AssetToken),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
