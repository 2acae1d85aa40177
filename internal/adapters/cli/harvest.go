package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/commands"
	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// NewHarvestCommand creates the harvest command
func NewHarvestCommand() *cobra.Command {
	var (
		slots   string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "harvest <house-id>",
		Short: "Collect a house's pending rewards",
		Long: `Collect a house's pending rewards.

Power is always credited on settlement. --slots picks what else to collect:
token, lumber, brick, concrete and steel, or all. Each slot has a power fee.
Harvesting the token counts toward the house's lifetime limit; a house that
reaches the limit dies and stops producing.

Examples:
  homestead harvest 3
  homestead harvest 3 --slots token,steel
  homestead harvest 3 --slots all --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseHouseID(args[0])
			if err != nil {
				return err
			}
			selector, err := parseSelector(slots)
			if err != nil {
				return err
			}

			if preview {
				return dispatch(cmd, &queries.GetHarvestCostQuery{HouseID: id, Selector: selector}, func(p *printer, response mediator.Response) {
					resp := response.(*queries.CostResponse)
					p.line("Harvesting house %d would cost %s", resp.HouseID, formatBundle(resp.Cost))
				})
			}

			actor, err := resolveActor()
			if err != nil {
				return err
			}
			request := &commands.HarvestCommand{Actor: actor, HouseID: id, Selector: selector}
			return dispatch(cmd, request, func(p *printer, response mediator.Response) {
				resp := response.(*commands.HarvestResponse)
				p.ok("Harvested house %d", resp.HouseID)
				p.field("Resources", formatBundle(resp.Resources))
				p.field("Token", formatDecimal(resp.Token))
				p.field("Fee", formatBundle(resp.Cost))
				p.field("Lifetime", formatDecimal(resp.Lifetime))
				if resp.Dead {
					p.line("%s", styleDenied.Sprint("The house reached its lifetime limit and no longer produces."))
				}
			})
		},
	}

	cmd.Flags().StringVar(&slots, "slots", "all", "Slots to harvest: all, or a list of token,lumber,brick,concrete,steel")
	cmd.Flags().BoolVar(&preview, "preview", false, "Only show the fee")
	return cmd
}
