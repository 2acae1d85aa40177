package cli

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	actorFlag  string
	serverURL  string
	jsonOutput bool
	noColor    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "homestead",
		Short: "Homestead - run and play the house economy",
		Long: `Homestead runs the house economy: houses produce resources over time, owners spend
them on facilities, addons and upkeep, and harvest a token reward until the house reaches
its lifetime limit.

Commands run against the configured database directly, or against a running
'homestead serve' when --server is given.

Examples:
  homestead house list --owner alice
  homestead house show 3
  homestead build upgrade 3 lumber_mill
  homestead upkeep repair 3 20 --preview
  homestead harvest 3 --slots token,lumber,brick
  homestead resources
  homestead ledger list --category INVESTMENT
  homestead serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.Disable()
			}
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: ./config.yaml, ./configs, /etc/homestead)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "",
		"Address to act as (default: from 'homestead config set-actor')")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("HOMESTEAD_SERVER"),
		"URL of a running homestead server; empty runs against the database")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print raw JSON responses")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewHouseCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewUpkeepCommand())
	rootCmd.AddCommand(NewHarvestCommand())
	rootCmd.AddCommand(NewResourcesCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewStakeCommand())
	rootCmd.AddCommand(NewEventsCommand())
	rootCmd.AddCommand(NewTuningCommand())
	rootCmd.AddCommand(NewAdminCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleDenied.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
