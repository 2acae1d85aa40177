package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// NewUpkeepCommand creates the upkeep command with subcommands
func NewUpkeepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upkeep",
		Short: "Keep a house in shape",
		Long: `Keep a house in shape.

Durability decays every day and lowers the multiplier. Fortifying raises the
maximum durability for a while, repairing restores it, and the handyman
restores it fully once per house. Lumber can be burnt for power in a fireplace
or stocked into the firepit, which burns a fixed amount every day.

Examples:
  homestead upkeep fortify 3 steel
  homestead upkeep repair 3 25 --preview
  homestead upkeep burn 3 10
  homestead upkeep firepit load 3 30
  homestead upkeep power 5`,
	}

	cmd.AddCommand(newUpkeepFortifyCommand())
	cmd.AddCommand(newUpkeepRepairCommand())
	cmd.AddCommand(newUpkeepHandymanCommand())
	cmd.AddCommand(newUpkeepBurnCommand())
	cmd.AddCommand(newUpkeepFirepitCommand())
	cmd.AddCommand(newUpkeepGatherCommand())
	cmd.AddCommand(newUpkeepPowerCommand())

	return cmd
}

func newUpkeepFortifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fortify <house-id> <brick|concrete|steel>",
		Short: "Fortify a house with a material",
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
			request := &commands.FortifyCommand{Actor: actor, HouseID: id, Material: args[1]}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.FortifyResponse)
				p.ok("House %d fortified with %s", resp.HouseID, resp.Material)
				p.field("Durability", formatDecimal(resp.Durability)+" / "+formatDecimal(resp.MaxDurability))
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func newUpkeepRepairCommand() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "repair <house-id> <amount>",
		Short: "Restore durability",
		Long: `Restore durability, up to the current maximum.

With --preview, only prints what the repair would cost.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}

			if preview {
				return dispatch(cmd, &queries.GetRepairCostQuery{HouseID: id, Amount: amount}, func(p *printer, response mediator.Response) {
					resp := response.(*queries.CostResponse)
					p.line("Repairing house %d by %s would cost %s", resp.HouseID, formatDecimal(amount), formatBundle(resp.Cost))
				})
			}

			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.RepairCommand{Actor: actor, HouseID: id, Amount: amount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.RepairResponse)
				p.ok("House %d repaired to %s", resp.HouseID, formatDecimal(resp.Durability))
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Only show the cost")
	return cmd
}

func newUpkeepHandymanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "handyman <house-id>",
		Short: "Hire the handyman to restore full durability (once per house)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			return dispatch(cmd, &commands.HireHandymanCommand{Actor: actor, HouseID: id}, func(p *printer, response mediator.Response) {
				resp := response.(*commands.HireHandymanResponse)
				p.ok("Handyman restored house %d to %s", resp.HouseID, formatDecimal(resp.Durability))
				p.field("Paid", formatDecimal(resp.Price)+" land token")
			})
		},
	}
}

func newUpkeepBurnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "burn <house-id> <lumber>",
		Short: "Burn lumber in the fireplace for power",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("lumber", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.BurnLumberCommand{Actor: actor, HouseID: id, Amount: amount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.BurnLumberResponse)
				p.ok("Burnt %s lumber into %s power", formatDecimal(resp.Lumber), formatDecimal(resp.Power))
			})
		},
	}
}

func newUpkeepFirepitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firepit",
		Short: "Stock or inspect the firepit",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "load <house-id> <lumber>",
		Short: "Stock the firepit with lumber",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("lumber", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.FrontLoadFirepitCommand{Actor: actor, HouseID: id, Amount: amount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.FrontLoadFirepitResponse)
				p.ok("Firepit of house %d holds %s lumber", resp.HouseID, formatDecimal(resp.Stocked))
				p.field("Burns for", pluralDays(resp.RemainDays))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <house-id>",
		Short: "Show how long the firepit keeps burning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			return dispatch(cmd, &queries.GetFirepitRemainDaysQuery{HouseID: id}, func(p *printer, response mediator.Response) {
				resp := response.(*queries.GetFirepitRemainDaysResponse)
				p.line("Firepit of house %d: %s lumber, %s left", resp.HouseID, formatDecimal(resp.Lumber), pluralDays(resp.RemainDays))
			})
		},
	})

	return cmd
}

func newUpkeepGatherCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gather <house-id> <amount>",
		Short: "Gather lumber by hand, paying power",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseIntArg("amount", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.GatherLumberCommand{Actor: actor, HouseID: id, Amount: amount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.GatherLumberResponse)
				p.ok("Gathered lumber at house %d (%d of %d today)", resp.HouseID, resp.Gathered, resp.Limit)
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func newUpkeepPowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "power <land-token>",
		Short: "Buy power with land token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.BuyPowerWithLandtokenCommand{Actor: actor, Amount: amount}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.BuyPowerWithLandtokenResponse)
				p.ok("Bought %s power for %s land token", formatDecimal(resp.Power), formatDecimal(resp.Paid))
			})
		},
	}
}
