package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Homestead configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HS_* prefix)
2. Config file (config.yaml)
3. Default values

The default actor is kept in a per-user profile
(<user config dir>/homestead/profile.yaml, or $HS_PROFILE).

Examples:
  homestead config show
  homestead config set-actor alice
  homestead config clear-actor`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetActorCommand())
	cmd.AddCommand(newConfigClearActorCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				p.line("%s failed to load config: %v", styleWarn.Sprint("warning:"), err)
				p.line("Using default configuration.")
				cfg = config.Defaults()
			}

			profile, err := config.LoadProfile()
			if err != nil {
				p.line("%s %v", styleWarn.Sprint("warning:"), err)
				profile = &config.Profile{}
			}

			if jsonOutput {
				shown := *cfg
				shown.Database.Postgres.Password = ""
				shown.Database.URL = maskPassword(cfg.Database.URL)
				return p.json(map[string]interface{}{"config": shown, "profile": profile})
			}

			p.heading("Homestead Configuration")

			p.line("\nProfile:")
			p.field("File", profile.Path())
			if profile.DefaultActor != "" {
				p.field("Default actor", profile.DefaultActor)
			} else {
				p.field("Default actor", styleSubtle.Sprint("(not set)"))
			}

			p.line("\nDatabase:")
			p.field("Type", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				p.field("Path", cfg.Database.Path)
			case cfg.Database.URL != "":
				p.field("URL", maskPassword(cfg.Database.URL))
			default:
				pg := cfg.Database.Postgres
				p.field("Host", fmt.Sprintf("%s:%d", pg.Host, pg.Port))
				p.field("Database", pg.Name)
				p.field("User", pg.User)
			}
			p.field("Max connections", cfg.Database.Pool.MaxOpen)

			p.line("\nGame:")
			tuningPath := cfg.Game.TuningPath
			if tuningPath == "" {
				tuningPath = styleSubtle.Sprint("(built-in)")
			}
			p.field("Tuning", tuningPath)
			admin := cfg.Game.Admin
			if admin == "" {
				admin = styleSubtle.Sprint("(disabled)")
			}
			p.field("Admin", admin)
			p.field("Event log", yesNo(cfg.Game.EventLog.Enabled))
			if cfg.Game.EventLog.Enabled {
				p.field("Event log dir", cfg.Game.EventLog.Dir)
			}

			p.line("\nServer:")
			p.field("Address", cfg.Server.Address)
			p.field("Rate limit", fmt.Sprintf("%d req/s (burst: %d)", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst))
			p.field("PID file", cfg.Server.PIDFile)

			p.line("\nMetrics:")
			p.field("Enabled", yesNo(cfg.Metrics.Enabled))
			p.field("Path", cfg.Metrics.Path)

			p.line("\nLogging:")
			p.field("Level", cfg.Logging.Level)
			p.field("Format", cfg.Logging.Format)
			p.field("Output", cfg.Logging.Output)
			return nil
		},
	}
}

// newConfigSetActorCommand creates the config set-actor subcommand
func newConfigSetActorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-actor <address>",
		Short: "Set default actor",
		Long: `Set the address commands act as when --actor is not given.

Example:
  homestead config set-actor alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := shared.NewAddress(args[0])
			if err != nil {
				return err
			}

			profile, err := config.LoadProfile()
			if err != nil {
				return err
			}
			profile.DefaultActor = address.String()
			if err := profile.Save(); err != nil {
				return fmt.Errorf("failed to set default actor: %w", err)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.ok("Default actor set to %s", address)
			p.line("Override with the --actor flag.")
			return nil
		},
	}
}

// newConfigClearActorCommand creates the config clear-actor subcommand
func newConfigClearActorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-actor",
		Short: "Clear default actor setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.LoadProfile()
			if err != nil {
				return err
			}
			profile.DefaultActor = ""
			if err := profile.Save(); err != nil {
				return fmt.Errorf("failed to clear default actor: %w", err)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.ok("Default actor cleared")
			p.line("You must now pass --actor to commands that act on a house.")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
