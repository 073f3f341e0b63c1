package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage bakery simulator configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BAKERY_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default session) are stored in ~/.bakerysim/config.json

Examples:
  bakery config show
  bakery config set-session demo
  bakery config clear-session`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetSessionCommand())
	cmd.AddCommand(newConfigClearSessionCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Bakery Simulator Configuration")
			fmt.Println("==============================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultSession != "" {
				fmt.Printf("  Default Session:  %s\n", userCfg.DefaultSession)
			} else {
				fmt.Printf("  Default Session:  (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nGame:")
			fmt.Printf("  Currency:         %s\n", formatMoney(cfg.Game.StartingCurrency))
			fmt.Printf("  Satisfaction:     %d\n", cfg.Game.StartingSatisfaction)
			fmt.Printf("  Reputation:       %d\n", cfg.Game.StartingReputation)
			fmt.Printf("  Events/Round:     %d\n", cfg.Game.EventsPerRound)
			fmt.Printf("  Opponents:        %d\n", cfg.Game.Opponents())
			if cfg.Game.Seed != 0 {
				fmt.Printf("  Seed:             %d\n", cfg.Game.Seed)
			} else {
				fmt.Printf("  Seed:             (time based)\n")
			}

			fmt.Println("\nContent:")
			fmt.Printf("  Regions:          %s\n", orEmbedded(cfg.Content.RegionsPath))
			fmt.Printf("  Catalog:          %s\n", orEmbedded(cfg.Content.CatalogPath))
			fmt.Printf("  Events:           %s\n", orEmbedded(cfg.Content.EventsPath))

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)
			fmt.Printf("  Persist:          %t\n", cfg.Logging.PersistEnabled())

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			return nil
		},
	}
}

func newConfigSetSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-session <session-id>",
		Short: "Set default session",
		Long: `Set the session used when --session is not given.

The session must already exist.

Example:
  bakery config set-session demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			return withApp(func(a *app) error {
				resp, err := a.send(id, &queries.ListSessionsQuery{})
				if err != nil {
					return err
				}
				found := false
				for _, s := range resp.(*queries.ListSessionsResponse).SessionIDs {
					if s == id {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("session '%s' not found", id)
				}

				userConfigHandler, err := config.NewUserConfigHandler()
				if err != nil {
					return fmt.Errorf("failed to create user config handler: %w", err)
				}
				if err := userConfigHandler.SetDefaultSession(id); err != nil {
					return fmt.Errorf("failed to set default session: %w", err)
				}

				fmt.Println("✓ Default session set successfully")
				fmt.Printf("  Session: %s\n", id)
				fmt.Printf("\nOverride with --session.\n")
				return nil
			})
		},
	}
}

func newConfigClearSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-session",
		Short: "Clear default session setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultSession(""); err != nil {
				return fmt.Errorf("failed to clear default session: %w", err)
			}

			fmt.Println("✓ Default session cleared")
			fmt.Println("\nYou must now pass --session to game commands.")
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
	return u.Redacted()
}

func orEmbedded(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}
