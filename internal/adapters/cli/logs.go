package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewLogsCommand retrieves session logs from the database
func NewLogsCommand() *cobra.Command {
	var (
		limit int
		level string
		since time.Duration
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the game log of a session",
		Long: `Retrieve log lines recorded for the session: recoveries, opponent
decisions that failed, completed events and rounds.

Examples:
  bakery logs
  bakery logs --limit 50
  bakery logs --level WARNING --since 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}

			return withApp(func(a *app) error {
				if a.logRepo == nil {
					return fmt.Errorf("session logs are disabled (logging.persist=false)")
				}

				var levelPtr *string
				if level != "" {
					levelPtr = &level
				}
				var sincePtr *time.Time
				if since > 0 {
					t := a.clock.Now().Add(-since)
					sincePtr = &t
				}

				logs, err := a.logRepo.GetLogs(context.Background(), id, limit, 0, levelPtr, sincePtr)
				if err != nil {
					return fmt.Errorf("failed to get logs: %w", err)
				}

				if len(logs) == 0 {
					fmt.Println("No logs found for session:", id)
					return nil
				}

				// Display logs in reverse order (oldest first)
				for i := len(logs) - 1; i >= 0; i-- {
					entry := logs[i]
					fmt.Printf("[%s] [%s] %s\n",
						entry.Timestamp.Format("2006-01-02 15:04:05"),
						entry.Level,
						entry.Message,
					)
				}

				fmt.Printf("\nTotal: %d log entries\n", len(logs))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of log entries")
	cmd.Flags().StringVar(&level, "level", "", "Filter by log level (INFO, WARNING, ERROR, DEBUG)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show entries newer than this (e.g. 30m, 2h)")

	return cmd
}
