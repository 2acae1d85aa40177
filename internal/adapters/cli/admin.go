package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	housecmd "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// NewAdminCommand creates the admin command with subcommands
func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operations reserved for the configured admin address",
		Long: `Operations reserved for the configured admin address (game.admin).

Examples:
  homestead admin mint alice --rare --name "Hill house"
  homestead admin grant-resources alice --lumber 100 --brick 50
  homestead admin grant-tokens alice --land 20 --asset 500`,
	}

	cmd.AddCommand(newAdminMintCommand())
	cmd.AddCommand(newAdminGrantResourcesCommand())
	cmd.AddCommand(newAdminGrantTokensCommand())

	return cmd
}

func newAdminMintCommand() *cobra.Command {
	var (
		rare bool
		name string
	)

	cmd := &cobra.Command{
		Use:   "mint <owner>",
		Short: "Mint a new house",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &housecmd.MintHouseCommand{Actor: actor, Owner: args[0], Rare: rare, Name: name}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*housecmd.MintHouseResponse)
				kind := "house"
				if resp.Rare {
					kind = "rare house"
				}
				p.ok("Minted %s %d for %s", kind, resp.HouseID, resp.Owner)
			})
		},
	}

	cmd.Flags().BoolVar(&rare, "rare", false, "Mint a rare house")
	cmd.Flags().StringVar(&name, "name", "", "House name")
	return cmd
}

func newAdminGrantResourcesCommand() *cobra.Command {
	amounts := make([]string, resource.Count)

	cmd := &cobra.Command{
		Use:   "grant-resources <owner>",
		Short: "Credit resources to an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := resource.ParseBundle(amounts)
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.AddResourceByAdminCommand{Actor: actor, Owner: args[0], Amounts: bundle}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.AddResourceByAdminResponse)
				p.ok("Credited %s to %s", formatBundle(bundle), resp.Owner)
				p.field("Balances", formatBundle(resp.Balances))
			})
		},
	}

	for _, kind := range resource.AllKinds() {
		cmd.Flags().StringVar(&amounts[kind], kindFlag(kind), "0", "Amount of "+kind.String())
	}
	return cmd
}

func newAdminGrantTokensCommand() *cobra.Command {
	var land, asset string

	cmd := &cobra.Command{
		Use:   "grant-tokens <owner>",
		Short: "Credit land and asset token to an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			landAmount, err := parseAmount("land", land)
			if err != nil {
				return err
			}
			assetAmount, err := parseAmount("asset", asset)
			if err != nil {
				return err
			}
			if landAmount.IsZero() && assetAmount.IsZero() {
				return fmt.Errorf("nothing to grant: pass --land or --asset")
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.GrantTokensCommand{Actor: actor, Owner: args[0], Land: landAmount, Asset: assetAmount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.GrantTokensResponse)
				p.ok("%s now holds %s land and %s asset token", resp.Owner, formatDecimal(resp.Land), formatDecimal(resp.Asset))
			})
		},
	}

	cmd.Flags().StringVar(&land, "land", decimal.Zero.String(), "Land token to credit")
	cmd.Flags().StringVar(&asset, "asset", decimal.Zero.String(), "Asset token to credit")
	return cmd
}

// kindFlag names the flag of a resource kind, e.g. --lumber
func kindFlag(kind resource.Kind) string {
	return strings.ToLower(kind.String())
}
