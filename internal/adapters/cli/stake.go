package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/stake/commands"
)

// NewStakeCommand creates the stake command with subcommands
func NewStakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Stake asset token on a house",
		Long: `Stake asset token on a house, or withdraw it.

Examples:
  homestead stake add 3 100
  homestead stake remove 3 40`,
	}

	cmd.AddCommand(newStakeMoveCommand("add", "Stake asset token on a house", func(actor string, id int64, amount string) (mediator.Request, error) {
		d, err := parseAmount("amount", amount)
		if err != nil {
			return nil, err
		}
		return &commands.StakeCommand{Actor: actor, HouseID: id, Amount: d}, nil
	}))
	cmd.AddCommand(newStakeMoveCommand("remove", "Withdraw staked asset token", func(actor string, id int64, amount string) (mediator.Request, error) {
		d, err := parseAmount("amount", amount)
		if err != nil {
			return nil, err
		}
		return &commands.UnstakeCommand{Actor: actor, HouseID: id, Amount: d}, nil
	}))

	return cmd
}

func newStakeMoveCommand(use, short string, build func(actor string, id int64, amount string) (mediator.Request, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <house-id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request, err := build(actor, id, args[1])
			if err != nil {
				return err
			}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.StakeResponse)
				p.ok("House %d has %s staked", resp.HouseID, formatDecimal(resp.Staked))
				p.field("Wallet", formatDecimal(resp.Wallet)+" asset token")
			})
		},
	}
}
