package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/game/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
)

// NewResourcesCommand creates the resources command
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources [owner]",
		Short: "Show an owner's balances",
		Long: `Show an owner's resource and token balances.

Every house the owner holds is settled first, so the balances include
production up to now. Power is capped by the owner's power limit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := ownerOrActor(args)
			if err != nil {
				return err
			}
			return dispatch(cmd, &queries.GetResourcesQuery{Owner: owner}, func(p *printer, response mediator.Response) {
				displayResources(p, response.(*queries.GetResourcesResponse))
			})
		},
	}
}

func displayResources(p *printer, resp *queries.GetResourcesResponse) {
	p.heading("Balances of %s", resp.Owner)
	w := p.table()
	fmt.Fprintln(w, "Resource\tAmount")
	fmt.Fprintln(w, "────────\t──────")
	for _, kind := range resource.AllKinds() {
		amount := formatDecimal(resp.Balances.Get(kind))
		if kind == resource.Power {
			amount += styleSubtle.Sprintf(" / %s", formatDecimal(resp.PowerLimit))
		}
		fmt.Fprintf(w, "%s\t%s\n", kind, amount)
	}
	fmt.Fprintf(w, "LAND_TOKEN\t%s\n", formatDecimal(resp.LandToken))
	fmt.Fprintf(w, "ASSET_TOKEN\t%s\n", formatDecimal(resp.AssetToken))
	w.Flush()
}
