package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	sessionID  string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bakery",
		Short: "Bakery management simulation",
		Long: `Run a bakery against AI competitors, one round at a time.

Each round you pick a region and district, stock your shelves, then play
through seven market events. After the last event a financial report is
generated and the next round begins.

Examples:
  bakery new --player Alice
  bakery region list
  bakery region select 住宅區 中正里
  bakery stock croissant=1400 toast=800
  bakery event show
  bakery event advance
  bakery event choose a
  bakery event confirm
  bakery report
  bakery leaderboard
  bakery simulate --rounds 10 --strategy correct`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "",
		"Session ID (default: last session started)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Echo game log lines to stderr")

	// Add command groups
	rootCmd.AddCommand(NewGameCommands()...)
	rootCmd.AddCommand(NewRegionCommand())
	rootCmd.AddCommand(NewStockCommand())
	rootCmd.AddCommand(NewEventCommand())
	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewLeaderboardCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
