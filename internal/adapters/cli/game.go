package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/pkg/utils"
)

// NewGameCommands creates the session lifecycle commands
func NewGameCommands() []*cobra.Command {
	return []*cobra.Command{
		newNewGameCommand(),
		newResetCommand(),
		newStatusCommand(),
		newSessionsCommand(),
	}
}

func newNewGameCommand() *cobra.Command {
	var (
		player    string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game session and make it the default for later commands.

Without --session an ID is derived from the player name. An existing session is
only replaced with --overwrite.

Examples:
  bakery new --player Alice
  bakery new --session weekend --overwrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if player == "" {
					player = a.cfg.Game.PlayerName
				}
				id := sessionID
				if id == "" {
					id = utils.GenerateSessionID(player)
				}
				resp, err := a.send(id, &commands.StartGameCommand{
					SessionID:  id,
					PlayerName: player,
					Overwrite:  overwrite,
				})
				if err != nil {
					return err
				}
				rememberSession(id)

				fmt.Println("✓ New game started")
				printStatus(resp.(*commands.StartGameResponse).Status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Player display name")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing session with the same ID")

	return cmd
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start the current session over",
		Long: `Discard all progress of the session, including its opponents, report
history and ledger, and start again from round 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &commands.ResetGameCommand{SessionID: id})
				if err != nil {
					return err
				}
				fmt.Println("✓ Session reset")
				printStatus(resp.(*commands.StartGameResponse).Status)
				return nil
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show round progress and resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &queries.GetRoundStatusQuery{SessionID: id})
				if err != nil {
					return err
				}
				printStatus(resp.(*queries.GetRoundStatusResponse).Status)
				return nil
			})
		},
	}
}

func newSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send("", &queries.ListSessionsQuery{})
				if err != nil {
					return err
				}
				ids := resp.(*queries.ListSessionsResponse).SessionIDs
				if len(ids) == 0 {
					fmt.Println("No sessions found")
					return nil
				}
				current, _ := resolveSessionID()
				for _, id := range ids {
					marker := " "
					if id == current {
						marker = "*"
					}
					fmt.Printf("%s %s\n", marker, id)
				}
				return nil
			})
		},
	}
}
