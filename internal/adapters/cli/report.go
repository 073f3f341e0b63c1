package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var (
		roundNumber int
		all         bool
		ack         bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show round financial reports",
		Long: `Show the financial report of a completed round.

Without flags the latest report is shown.

Examples:
  bakery report
  bakery report --round 2
  bakery report --all
  bakery report --ack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				if ack {
					resp, err := a.send(id, &commands.AcknowledgeReportCommand{SessionID: id})
					if err != nil {
						return err
					}
					printReport(resp.(*commands.AcknowledgeReportResponse).Report)
					return nil
				}

				query := &queries.GetReportHistoryQuery{SessionID: id}
				if roundNumber > 0 {
					query.Round = &roundNumber
				}
				resp, err := a.send(id, query)
				if err != nil {
					return err
				}
				reports := resp.(*queries.GetReportHistoryResponse).Reports
				if len(reports) == 0 {
					fmt.Println("No reports yet")
					return nil
				}
				if !all && roundNumber == 0 {
					reports = reports[len(reports)-1:]
				}
				for i, r := range reports {
					if i > 0 {
						fmt.Println()
					}
					printReport(r)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&roundNumber, "round", 0, "Round number")
	cmd.Flags().BoolVar(&all, "all", false, "Show every report")
	cmd.Flags().BoolVar(&ack, "ack", false, "Acknowledge the pending report")

	return cmd
}

// NewLeaderboardCommand creates the leaderboard command
func NewLeaderboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank the player against the AI bakeries",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &queries.GetLeaderboardQuery{SessionID: id})
				if err != nil {
					return err
				}
				board := resp.(*queries.GetLeaderboardResponse)

				fmt.Printf("Leaderboard after round %d\n\n", board.Round)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RANK\tNAME\tSTYLE\tCURRENCY\tREPUTATION\tSATISFACTION\tACCURACY")
				for _, e := range board.Entries {
					style, accuracy := "player", "-"
					if !e.IsHuman() {
						style = e.Personality
						if stats, ok := board.Stats[e.ActorID.String()]; ok && stats.EventsPlayed > 0 {
							accuracy = fmt.Sprintf("%.0f%%", stats.Accuracy()*100)
						}
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
						e.Rank, e.Name, style, formatMoney(e.Resources.Currency),
						e.Resources.Reputation, e.Resources.Satisfaction, accuracy)
				}
				return w.Flush()
			})
		},
	}
}

func printReport(r report.RoundReport) {
	fmt.Printf("Round %d report: %s / %s\n", r.RoundNumber, r.RegionType, r.District)
	fmt.Println("==============================")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EVENT\tOPTION\tREVENUE\tCOST\tUNITS\tSAT\tREP")
	for _, e := range r.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.EventID, e.OptionID, formatMoney(e.Revenue), formatMoney(e.Cost),
			e.SalesVolume, formatSigned(e.SatisfactionChange), formatSigned(e.ReputationChange))
	}
	w.Flush()

	fmt.Printf("\nRent:          %s\n", formatMoney(r.RentPaid))
	fmt.Printf("Stocking:      %s\n", formatMoney(r.StockingCost))
	fmt.Printf("Revenue:       %s\n", formatMoney(r.TotalRevenue))
	fmt.Printf("Costs:         %s\n", formatMoney(r.TotalCost))
	fmt.Printf("Units sold:    %d\n", r.TotalSalesVolume)
	fmt.Printf("Satisfaction:  %s\n", formatSigned(r.SatisfactionChange))
	fmt.Printf("Reputation:    %s\n", formatSigned(r.ReputationChange))
	fmt.Printf("Net profit:    %s\n", formatMoney(r.NetProfit()))
}
