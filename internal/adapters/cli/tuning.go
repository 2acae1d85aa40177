package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/tuning"
)

// NewTuningCommand creates the tuning command with subcommands
func NewTuningCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tuning",
		Short: "Inspect and validate tuning tables",
		Long: `Inspect and validate tuning tables.

A tuning table fixes every rate, cost and limit of the game. The server loads
it from game.tuning_path at startup; without one, the built-in table is used.

Examples:
  homestead tuning validate tuning.yaml
  homestead tuning show
  homestead tuning schema > tuning.schema.json`,
	}

	cmd.AddCommand(newTuningValidateCommand())
	cmd.AddCommand(newTuningShowCommand())
	cmd.AddCommand(newTuningSchemaCommand())

	return cmd
}

func newTuningValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a tuning document against the schema and game rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tuning.Load(args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.ok("%s is valid: %d addons, %d toolsheds", args[0], len(table.Addons), len(table.Toolsheds))
			return nil
		},
	}
}

func newTuningShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Summarize a tuning table (default: the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.LoadConfigOrDefault(configPath).Game.TuningPath
			if len(args) == 1 {
				path = args[0]
			}
			table, err := tuning.Load(path)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if jsonOutput {
				return p.json(table)
			}
			displayTuning(p, table)
			return nil
		},
	}
}

func newTuningSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of tuning documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(tuning.Schema())
			return err
		},
	}
}

func displayTuning(p *printer, t *settings.Table) {
	p.heading("Generation (units per day)")
	w := p.table()
	header := "Facility"
	for level := 1; level <= settings.MaxLevel; level++ {
		header += fmt.Sprintf("\tL%d", level)
	}
	fmt.Fprintln(w, header)
	for _, kind := range resource.AllKinds() {
		row := kind.FacilityName()
		for level := 1; level <= settings.MaxLevel; level++ {
			row += "\t" + formatDecimal(t.GenerationRate(kind, level))
		}
		fmt.Fprintln(w, row)
	}
	w.Flush()

	p.heading("\nLimits")
	p.field("Power limit L1", formatDecimal(t.PowerLimit(1)))
	p.field("Power limit max", formatDecimal(t.PowerLimit(settings.MaxLevel)))
	p.field("Harvest limit", formatDecimal(t.HarvestLimit(false)))
	p.field("Harvest limit rare", formatDecimal(t.HarvestLimit(true)))
	p.field("Multiplier", formatDecimal(t.BaseMultiplier(false)))
	p.field("Multiplier rare", formatDecimal(t.BaseMultiplier(true)))
	p.field("Salvage refund", fmt.Sprintf("%d%%", t.SalvageRefundPercent))

	p.heading("\nAddons")
	p.line("%s", NewAddonTreeFormatter(t, nil, false).FormatTree())

	p.heading("Toolsheds")
	for _, shed := range t.Toolsheds {
		p.field(fmt.Sprintf("#%d %s", shed.ID, shed.Name), formatBundle(shed.Cost))
	}
}
