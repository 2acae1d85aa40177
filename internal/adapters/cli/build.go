package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// NewBuildCommand creates the build command with subcommands
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Spend resources improving a house",
		Long: `Spend resources improving a house.

Every purchase settles the house first, then charges the owner's balances.
A purchase the owner cannot afford is rejected and changes nothing.

Examples:
  homestead build upgrade 3 lumber_mill
  homestead build addon buy 3 4
  homestead build addon salvage 3 2
  homestead build toolshed buy 3 1
  homestead build item 3 fireplace
  homestead build overdrive 3 steel_mill`,
	}

	cmd.AddCommand(newBuildUpgradeCommand())
	cmd.AddCommand(newBuildAddonCommand())
	cmd.AddCommand(newBuildFertilizeCommand())
	cmd.AddCommand(newBuildToolshedCommand())
	cmd.AddCommand(newBuildItemCommand())
	cmd.AddCommand(newBuildOverdriveCommand())

	return cmd
}

func newBuildUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <house-id> <facility>",
		Short: "Raise a facility one level",
		Long: `Raise a facility one level.

Facilities: windfarm, lumber_mill, brick_factory, concrete_plant, steel_mill.
Upgrading the windfarm also raises the owner's power limit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.UpgradeFacilityCommand{Actor: actor, HouseID: id, Facility: args[1]}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.UpgradeFacilityResponse)
				p.ok("%s of house %d is now level %d", resp.Facility, resp.HouseID, resp.Level)
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func newBuildAddonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addon",
		Short: "Buy or salvage addons",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <house-id> <addon-id>",
		Short: "Buy an addon whose prerequisites the house owns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			addon, err := parseIntArg("addon id", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.BuyAddonCommand{Actor: actor, HouseID: id, AddonID: addon}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.BuyAddonResponse)
				p.ok("Bought addon #%d %s for house %d", resp.AddonID, resp.Name, resp.HouseID)
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "salvage <house-id> <addon-id>",
		Short: "Salvage an addon and everything that depends on it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			addon, err := parseIntArg("addon id", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.SalvageAddonCommand{Actor: actor, HouseID: id, AddonID: addon}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.SalvageAddonResponse)
				p.ok("Salvaged addon #%d from house %d", resp.AddonID, resp.HouseID)
				if len(resp.Cascaded) > 0 {
					p.field("Also salvaged", joinInts(resp.Cascaded))
				}
				p.field("Refund", formatBundle(resp.Refund))
			})
		},
	})

	return cmd
}

func newBuildFertilizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fertilize <house-id>",
		Short: "Fertilize the garden, restarting its addon lifetime",
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
			return dispatch(cmd, &commands.FertilizeGardenCommand{Actor: actor, HouseID: id}, func(p *printer, response mediator.Response) {
				resp := response.(*commands.FertilizeGardenResponse)
				p.ok("Garden of house %d fertilized", resp.HouseID)
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func newBuildToolshedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolshed",
		Short: "Buy or switch toolsheds",
		Long: `Buy or switch toolsheds.

Only one toolshed is active at a time. Switching between owned toolsheds
costs a fee set by the tuning table.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <house-id> <toolshed-id>",
		Short: "Buy a toolshed and make it active",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			shed, err := parseIntArg("toolshed id", args[1])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.BuyToolshedCommand{Actor: actor, HouseID: id, ToolshedID: shed}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				displayToolshed(p, response.(*commands.ToolshedResponse))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "switch <house-id> <from> <to>",
		Short: "Switch the active toolshed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			from, err := parseIntArg("toolshed id", args[1])
			if err != nil {
				return err
			}
			to, err := parseIntArg("toolshed id", args[2])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.SwitchToolshedCommand{Actor: actor, HouseID: id, From: from, To: to}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				displayToolshed(p, response.(*commands.ToolshedResponse))
			})
		},
	})

	return cmd
}

func newBuildItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "item <house-id> <fireplace|harvester|foundation>",
		Short: "Buy a one-off house item",
		Long: `Buy a one-off house item.

  fireplace   lets the owner burn lumber into power
  harvester   harvests automatically on every settlement
  foundation  slows durability decay`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			actor, err := resolveActor()
			if err != nil {
				return err
			}

			var request mediator.Request
			switch strings.ToLower(args[1]) {
			case "fireplace":
				request = &commands.BuyFireplaceCommand{Actor: actor, HouseID: id}
			case "harvester":
				request = &commands.BuyHarvesterCommand{Actor: actor, HouseID: id}
			case "foundation", "concrete_foundation":
				request = &commands.BuyConcreteFoundationCommand{Actor: actor, HouseID: id}
			default:
				return invalidChoice("item", args[1], "fireplace", "harvester", "foundation")
			}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.ItemResponse)
				p.ok("House %d now has a %s", resp.HouseID, strings.ToLower(resp.Item))
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func newBuildOverdriveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overdrive <house-id> <facility>",
		Short: "Temporarily boost one facility's output",
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
			request := &commands.BuyResourceOverdriveCommand{Actor: actor, HouseID: id, Facility: args[1]}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.BuyResourceOverdriveResponse)
				p.ok("%s of house %d in overdrive until %s", resp.Facility, resp.HouseID, formatTime(resp.Until))
				p.field("Cost", formatBundle(resp.Cost))
			})
		},
	}
}

func displayToolshed(p *printer, resp *commands.ToolshedResponse) {
	p.ok("House %d toolshed %d is active", resp.HouseID, resp.Active)
	p.field("Owned", joinInts(resp.Owned))
	p.field("Cost", formatBundle(resp.Cost))
}
