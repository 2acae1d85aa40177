package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	housecmd "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/tuning"
)

// NewHouseCommand creates the house command with subcommands
func NewHouseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "house",
		Short: "Inspect and manage houses",
		Long: `Inspect and manage houses.

A house must be activated before it produces anything. Reading a house settles
its production up to now, so the figures shown are current.

Examples:
  homestead house list
  homestead house show 3
  homestead house activate 3
  homestead house addons 3`,
	}

	cmd.AddCommand(newHouseListCommand())
	cmd.AddCommand(newHouseShowCommand())
	cmd.AddCommand(newHouseActivateCommand())
	cmd.AddCommand(newHouseRenameCommand())
	cmd.AddCommand(newHouseTransferCommand())
	cmd.AddCommand(newHouseAddonsCommand())

	return cmd
}

func newHouseListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [owner]",
		Short: "List an owner's houses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ownerOrActor(args)
			if err != nil {
				return err
			}
			return dispatch(cmd, &queries.GetHousesByOwnerQuery{Owner: owner}, func(p *printer, response mediator.Response) {
				displayHouseList(p, owner, response.(*queries.GetHousesByOwnerResponse).Houses)
			})
		},
	}
}

func newHouseShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <house-id>",
		Short: "Show one house",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			return dispatch(cmd, &queries.GetHouseDetailsQuery{HouseID: id}, func(p *printer, response mediator.Response) {
				displayHouse(p, response.(*queries.GetHouseDetailsResponse).House)
			})
		},
	}
}

func newHouseActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <house-id>",
		Short: "Activate a house so it starts producing",
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
			return dispatch(cmd, &commands.ActivateHouseCommand{Actor: actor, HouseID: id}, func(p *printer, response mediator.Response) {
				resp := response.(*commands.ActivateHouseResponse)
				p.ok("House %d activated at %s", resp.HouseID, formatTime(resp.ActivatedAt))
			})
		},
	}
}

func newHouseRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <house-id> <name>",
		Short: "Rename a house",
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
			request := &housecmd.SetHouseNameCommand{Actor: actor, HouseID: id, Name: args[1]}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*housecmd.HouseResponse)
				p.ok("House %d is now %q", resp.HouseID, resp.Name)
			})
		},
	}
}

func newHouseTransferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <house-id> <to>",
		Short: "Give a house to another owner",
		Long: `Give a house to another owner.

Production up to the moment of transfer is credited to the current owner.`,
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
			request := &housecmd.TransferHouseCommand{Actor: actor, HouseID: id, To: args[1]}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*housecmd.HouseResponse)
				p.ok("House %d now belongs to %s", resp.HouseID, resp.Owner)
			})
		},
	}
}

func newHouseAddonsCommand() *cobra.Command {
	var emojis bool

	cmd := &cobra.Command{
		Use:   "addons [house-id]",
		Short: "Show the addon dependency tree",
		Long: `Show the addon dependency tree from the configured tuning table.

With a house id, marks which addons the house owns and which are active.
Salvaging an addon also salvages everything listed beneath it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)
			table, err := tuning.Load(cfg.Game.TuningPath)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				f := NewAddonTreeFormatter(table, nil, emojis)
				p := newPrinter(cmd.OutOrStdout())
				p.heading("Addon catalog")
				p.line("%s", f.FormatTree())
				return nil
			}

			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			return dispatch(cmd, &queries.GetHouseDetailsQuery{HouseID: id}, func(p *printer, response mediator.Response) {
				h := response.(*queries.GetHouseDetailsResponse).House
				states := make(map[settings.AddonID]AddonState, len(h.Addons))
				for _, a := range h.Addons {
					states[settings.AddonID(a.ID)] = AddonOwned
					if a.Active {
						states[settings.AddonID(a.ID)] = AddonActive
					}
				}
				f := NewAddonTreeFormatter(table, states, emojis)
				p.heading("House %d addons", h.ID)
				p.line("%s", f.FormatTree())
				p.line("%s", f.FormatSummary())
			})
		},
	}

	cmd.Flags().BoolVar(&emojis, "emojis", false, "Use emoji status markers")
	return cmd
}

func displayHouseList(p *printer, owner string, houses []*queries.HouseDTO) {
	if len(houses) == 0 {
		p.line("%s owns no houses", owner)
		return
	}

	p.heading("Houses of %s (%d)", owner, len(houses))
	w := p.table()
	fmt.Fprintln(w, "ID\tName\tStatus\tMultiplier\tDurability\tLifetime\tPending")
	fmt.Fprintln(w, "──\t────\t──────\t──────────\t──────────\t────────\t───────")
	for _, h := range houses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s/%s\t%s/%s\t%s\n",
			h.ID,
			h.Name,
			houseStatus(h),
			formatDecimal(h.Multiplier),
			formatDecimal(h.Durability),
			formatDecimal(h.MaxDurability),
			formatDecimal(h.Lifetime),
			formatDecimal(h.HarvestLimit),
			formatBundle(h.PendingRewards),
		)
	}
	w.Flush()
}

func displayHouse(p *printer, h *queries.HouseDTO) {
	title := fmt.Sprintf("House %d", h.ID)
	if h.Name != "" {
		title += " - " + h.Name
	}
	p.heading("%s", title)
	p.field("Owner", h.Owner)
	p.field("Status", houseStatus(h))
	p.field("Rare", yesNo(h.Rare))
	p.field("Activated", formatOptionalTime(h.ActivatedAt))
	if h.Dead {
		p.field("Died", formatOptionalTime(h.DeadAt))
	}

	p.line("\nFacilities:")
	for _, kind := range resource.AllKinds() {
		suffix := ""
		if until, ok := h.Overdrive[kind.FacilityName()]; ok {
			suffix = styleOK.Sprintf(" overdrive until %s", formatTime(until))
		}
		p.field(kind.FacilityName(), fmt.Sprintf("level %d%s", h.Levels[kind], suffix))
	}

	p.line("\nProduction:")
	p.field("Pending", formatBundle(h.PendingRewards))
	p.field("Pending token", formatDecimal(h.PendingToken))
	p.field("Lifetime", fmt.Sprintf("%s / %s", formatDecimal(h.Lifetime), formatDecimal(h.HarvestLimit)))
	p.field("Multiplier", formatDecimal(h.Multiplier))
	p.field("Staked", formatDecimal(h.Staked))

	p.line("\nCondition:")
	p.field("Durability", fmt.Sprintf("%s / %s", formatDecimal(h.Durability), formatDecimal(h.MaxDurability)))
	p.field("Handyman used", yesNo(h.HandymanUsed))
	for _, b := range h.Boosts {
		state := styleSubtle.Sprint("expired")
		if b.Active {
			state = styleOK.Sprint("active")
		}
		p.field(b.Material, fmt.Sprintf("+%s since %s (%s)", formatDecimal(b.Magnitude), formatTime(b.AppliedAt), state))
	}

	p.line("\nItems:")
	p.field("Fireplace", yesNo(h.Fireplace))
	p.field("Harvester", yesNo(h.Harvester))
	p.field("Foundation", yesNo(h.ConcreteFoundation))
	p.field("Firepit", fmt.Sprintf("%s lumber, %d days", formatDecimal(h.FirepitLumber), h.FirepitRemainDays))
	p.field("Gathered", fmt.Sprintf("%d / %d", h.Gathered, h.GatherLimit))

	if len(h.Toolsheds) > 0 {
		sheds := append([]int(nil), h.Toolsheds...)
		sort.Ints(sheds)
		p.field("Toolsheds", fmt.Sprintf("%v (active %d)", sheds, h.ActiveToolshed))
	}

	if len(h.Addons) > 0 {
		p.line("\nAddons:")
		for _, a := range h.Addons {
			state := styleSubtle.Sprint("inactive")
			if a.Active {
				state = styleOK.Sprint("active")
			}
			p.line("  #%-3d %-22s %s", a.ID, a.Name, state)
		}
	}
}

func houseStatus(h *queries.HouseDTO) string {
	switch {
	case h.Dead:
		return styleDenied.Sprint("dead")
	case !h.Activated:
		return styleWarn.Sprint("inactive")
	default:
		return styleOK.Sprint("producing")
	}
}
