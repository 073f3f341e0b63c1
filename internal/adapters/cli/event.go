package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
)

// NewEventCommand creates the event command with subcommands
func NewEventCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Play the current market event",
		Long: `Every event moves through four stages:

  reveal     the economic signal (HOT, NORMAL, LOW)
  narrative  the story behind the event
  decision   three options to choose from
  feedback   the outcome; confirming applies effects and runs sales

Examples:
  bakery event show
  bakery event advance
  bakery event choose b
  bakery event confirm`,
	}

	cmd.AddCommand(newEventShowCommand())
	cmd.AddCommand(newEventAdvanceCommand())
	cmd.AddCommand(newEventChooseCommand())
	cmd.AddCommand(newEventConfirmCommand())

	return cmd
}

func newEventShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current event at its current stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &queries.GetCurrentEventQuery{SessionID: id})
				if err != nil {
					return err
				}
				printEventView(resp.(*queries.GetCurrentEventResponse).View)
				return nil
			})
		},
	}
}

func newEventAdvanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Move from the reveal or narrative to the next stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &commands.AdvanceDialogueCommand{SessionID: id})
				if err != nil {
					return err
				}
				printEventView(resp.(*commands.EventResponse).View)
				return nil
			})
		},
	}
}

func newEventChooseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "choose <option-id>",
		Short: "Answer the decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &commands.SelectOptionCommand{SessionID: id, OptionID: args[0]})
				if err != nil {
					return err
				}
				printEventView(resp.(*commands.EventResponse).View)
				return nil
			})
		},
	}
}

func newEventConfirmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Apply the chosen option and run sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &commands.ConfirmFeedbackCommand{SessionID: id})
				if err != nil {
					return err
				}
				out := resp.(*commands.ConfirmFeedbackResponse)
				printFeedback(out.Result)
				if out.Result.Report != nil {
					fmt.Println()
					printReport(*out.Result.Report)
				}
				return nil
			})
		},
	}
}

func printEventView(v game.EventView) {
	e := v.Event
	fmt.Printf("Round %d, event %d/%d: %s\n", v.Round, v.Index+1, v.EventsPerRound, e.Title)
	fmt.Printf("Stage: %s\n\n", v.Flow.Stage.String())

	switch v.Flow.Stage {
	case event.StageEconomicSignalReveal:
		fmt.Printf("Market signal: %s (demand x%.1f)\n", e.Signal, e.Signal.Multiplier())
	case event.StageNarrative:
		fmt.Println(e.StoryText)
		if e.Description != "" {
			fmt.Printf("\n%s\n", e.Description)
		}
	case event.StageDecision:
		fmt.Println(e.Description)
		fmt.Println()
		for _, o := range e.Options {
			fmt.Printf("  [%s] %s\n", o.ID, o.Text)
		}
	case event.StageFeedback:
		if o, ok := e.Option(v.Flow.SelectedOptionID); ok {
			fmt.Printf("You chose [%s] %s\n\n%s\n", o.ID, o.Text, o.FeedbackText)
		}
		if e.MarketingLesson != "" {
			fmt.Printf("\nLesson: %s\n", e.MarketingLesson)
		}
		fmt.Println("\nRun 'bakery event confirm' to apply the outcome.")
	}
}

func printFeedback(r game.FeedbackResult) {
	if !r.Applied {
		fmt.Println("Event already finalized; nothing changed.")
		return
	}
	fmt.Printf("✓ %s: option [%s] applied\n", r.EventID, r.Option.ID)
	fmt.Printf("  Effects:   currency %s, satisfaction %s, reputation %s\n",
		formatSigned(r.Effects.Currency), formatSigned(r.Effects.Satisfaction), formatSigned(r.Effects.Reputation))
	fmt.Printf("  Sales:     %d units, revenue %s\n", r.Sales.TotalSalesVolume, formatMoney(r.Sales.TotalRevenue))
	fmt.Printf("  Currency:  %s\n", formatMoney(r.Resources.Currency))
	if r.RoundComplete {
		fmt.Println("  Round complete!")
	}
}
