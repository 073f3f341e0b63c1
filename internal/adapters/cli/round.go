package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/game/commands"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
)

// NewRegionCommand creates the region command with subcommands
func NewRegionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Region and district selection",
		Long: `List regions or open the round in a district.

Selecting a region pays its base rent. The district's coefficient scales
customer demand for every event of the round.

Examples:
  bakery region list
  bakery region select 商業區 站前`,
	}

	cmd.AddCommand(newRegionListCommand())
	cmd.AddCommand(newRegionSelectCommand())

	return cmd
}

func newRegionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List regions, rents and district coefficients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "REGION\tRENT\tDISTRICT\tCOEFFICIENT")
				for _, r := range a.content.Regions.Regions() {
					for i, d := range r.Districts {
						regionCol, rentCol := "", ""
						if i == 0 {
							regionCol, rentCol = r.Type, formatMoney(r.BaseRent)
						}
						fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", regionCol, rentCol, d.Name, d.Coefficient)
					}
				}
				return w.Flush()
			})
		},
	}
}

func newRegionSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <region> <district>",
		Short: "Open the round in a district and pay rent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				resp, err := a.send(id, &commands.SelectRegionCommand{
					SessionID:  id,
					RegionType: args[0],
					District:   args[1],
				})
				if err != nil {
					return err
				}
				sel := resp.(*commands.SelectRegionResponse).Selection
				fmt.Printf("✓ Opened in %s / %s (x%.2f), rent %s paid\n",
					sel.RegionType, sel.District, sel.Coefficient, formatMoney(sel.Rent))
				fmt.Printf("  Currency: %s\n", formatMoney(sel.Currency))
				printRegionDecisions(sel.Opponents)
				return nil
			})
		},
	}
}

// NewStockCommand creates the stock purchase command
func NewStockCommand() *cobra.Command {
	var each int

	cmd := &cobra.Command{
		Use:   "stock [product=quantity...]",
		Short: "Purchase inventory for the round",
		Long: `Purchase inventory once per round, after selecting a region.

Examples:
  bakery stock croissant=1400
  bakery stock croissant=800 toast=600 cake=200
  bakery stock --each 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			order, err := parseOrder(args)
			if err != nil {
				return err
			}

			return withApp(func(a *app) error {
				if each > 0 {
					for _, p := range a.content.Catalog.Products() {
						order[p.ID] += each
					}
				}
				if len(order) == 0 {
					return fmt.Errorf("no products given: pass product=quantity pairs or --each")
				}

				resp, err := a.send(id, &commands.PurchaseStockCommand{SessionID: id, Order: order})
				if err != nil {
					return err
				}
				purchase := resp.(*commands.PurchaseStockResponse).Purchase
				fmt.Printf("✓ Stock purchased for %s\n", formatMoney(purchase.Cost))
				fmt.Printf("  Currency: %s\n", formatMoney(purchase.Currency))
				printStockDecisions(purchase.Opponents)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&each, "each", 0, "Add this many units of every product")

	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printRegionDecisions(decisions map[string]opponent.RegionDecision) {
	if len(decisions) == 0 {
		return
	}
	fmt.Println("\nOpponents:")
	for _, id := range sortedKeys(decisions) {
		d := decisions[id]
		if d.SatOut {
			fmt.Printf("  %-18s sits this round out\n", id)
			continue
		}
		fmt.Printf("  %-18s %s / %s (rent %s)\n", id, d.RegionType, d.District, formatMoney(d.Rent))
	}
}

func printStockDecisions(decisions map[string]opponent.StockDecision) {
	if len(decisions) == 0 {
		return
	}
	fmt.Println("\nOpponents:")
	for _, id := range sortedKeys(decisions) {
		d := decisions[id]
		note := ""
		if d.ScaledDown {
			note = " (scaled down)"
		}
		fmt.Printf("  %-18s stocked for %s%s\n", id, formatMoney(d.Cost), note)
	}
}
