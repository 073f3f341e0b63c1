package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/application/game/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/simulation"
	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/pidfile"
)

// NewSimulateCommand creates the headless simulation command
func NewSimulateCommand() *cobra.Command {
	var (
		rounds       int
		strategyName string
		stockShare   float64
		fresh        bool
		serveMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Auto-play rounds for balance testing",
		Long: `Play whole rounds automatically against the AI opponents.

The correct strategy always picks the option marked correct; the random
strategy picks uniformly. Stock is bought as an even mix of products using
--stock-share of the currency left after rent.

With --serve-metrics the Prometheus endpoint configured under "metrics"
stays up after the run until interrupted.

Examples:
  bakery simulate --rounds 10
  bakery simulate --new --session balance-1 --rounds 20 --strategy random
  bakery simulate --rounds 5 --serve-metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := simulation.ParseStrategy(strategyName)
			if err != nil {
				return err
			}

			a, err := newApp(appOptions{forceMetrics: serveMetrics})
			if err != nil {
				return err
			}
			defer a.close()

			id := sessionID
			if fresh {
				if id == "" {
					id = fmt.Sprintf("sim-%d", time.Now().Unix())
				}
				if _, err := a.send(id, &commands.StartGameCommand{
					SessionID:  id,
					PlayerName: a.cfg.Game.PlayerName,
					Overwrite:  true,
				}); err != nil {
					return err
				}
				rememberSession(id)
			} else if id, err = resolveSessionID(); err != nil {
				return err
			}

			lock := pidfile.ForSession(os.TempDir(), id)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if serveMetrics {
				server, err := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
				if err != nil {
					return err
				}
				server.Start(ctx)
				a.financial.Start(ctx, 5*time.Second)
				fmt.Printf("Serving metrics on http://%s%s\n\n", server.Addr(), a.cfg.Metrics.Path)
			}

			resp, err := a.send(id, &simulation.AutoplayCommand{
				SessionID:  id,
				Rounds:     rounds,
				Strategy:   strategy,
				StockShare: stockShare,
			})
			if err != nil {
				return err
			}
			displaySimulation(resp.(*simulation.AutoplayResponse))

			board, err := a.send(id, &queries.GetLeaderboardQuery{SessionID: id})
			if err == nil {
				fmt.Println()
				for _, e := range board.(*queries.GetLeaderboardResponse).Entries {
					fmt.Printf("  %d. %-16s %s\n", e.Rank, e.Name, formatMoney(e.Resources.Currency))
				}
			}

			if serveMetrics {
				a.financial.UpdateProfitLoss(ctx)
				fmt.Println("\nPress Ctrl-C to stop serving metrics")
				<-ctx.Done()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 5, "Rounds to play")
	cmd.Flags().StringVar(&strategyName, "strategy", string(simulation.StrategyCorrect), "Decision strategy (correct, random)")
	cmd.Flags().Float64Var(&stockShare, "stock-share", simulation.DefaultStockShare, "Share of currency spent on stock each round")
	cmd.Flags().BoolVar(&fresh, "new", false, "Start a fresh session before playing")
	cmd.Flags().BoolVar(&serveMetrics, "serve-metrics", false, "Expose Prometheus metrics while and after playing")

	return cmd
}

func displaySimulation(r *simulation.AutoplayResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROUND\tREGION\tDISTRICT\tREVENUE\tCOSTS\tRENT\tNET")
	for _, rep := range r.Reports {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rep.RoundNumber, rep.RegionType, rep.District,
			formatMoney(rep.TotalRevenue), formatMoney(rep.TotalCost),
			formatMoney(rep.RentPaid), formatMoney(rep.NetProfit()))
	}
	w.Flush()

	fmt.Printf("\nStatus:         %s (%s)\n", r.Status, r.Runtime.Round(time.Millisecond))
	fmt.Printf("Rounds played:  %d\n", r.RoundsPlayed)
	fmt.Printf("Net profit:     %s\n", formatMoney(r.TotalNetProfit))
	fmt.Printf("Currency:       %s\n", formatMoney(r.Final.Resources.Currency))
	if r.StoppedReason != "" {
		fmt.Printf("Stopped early:  %s\n", r.StoppedReason)
	}
}
