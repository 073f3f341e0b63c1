package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/bakerysim-go/internal/application/ledger/queries"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze the player's currency transactions.

The ledger records every currency change: rent, stock purchases, sales
revenue and event effects. Use these commands to view transaction history
and generate financial statements.

Examples:
  bakery ledger list
  bakery ledger list --round 2 --category RENT
  bakery ledger profit-loss
  bakery ledger profit-loss --round 3
  bakery ledger cash-flow`,
	}

	// Add subcommands
	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerProfitLossCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		roundNumber int
		category    string
		txType      string
		eventID     string
		limit       int
		offset      int
		oldest      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions with optional filtering.

Categories:
  RENT             - Base rent paid on region selection
  INVENTORY_COSTS  - Stock purchases
  SALES_REVENUE    - Income from sales passes
  EVENT_EFFECTS    - Direct currency effects of event options

Transaction Types:
  RENT_PAYMENT, STOCK_PURCHASE, SALES_REVENUE, EVENT_EFFECT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				SessionID: id,
				Category:  category,
				Type:      txType,
				EventID:   eventID,
				Limit:     limit,
				Offset:    offset,
				Oldest:    oldest,
			}
			if roundNumber > 0 {
				query.Round = &roundNumber
			}

			return withApp(func(a *app) error {
				result, err := a.send(id, query)
				if err != nil {
					return fmt.Errorf("failed to query transactions: %w", err)
				}
				displayTransactionList(result.(*queries.GetTransactionsResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&roundNumber, "round", 0, "Filter by round")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category ("+joinValues(ledger.AllCategories())+")")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type ("+joinValues(ledger.AllTransactionTypes())+")")
	cmd.Flags().StringVar(&eventID, "event", "", "Only lines produced by this event ID")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().BoolVar(&oldest, "oldest", false, "List oldest transactions first")

	return cmd
}

// newLedgerProfitLossCommand creates the profit & loss report subcommand
func newLedgerProfitLossCommand() *cobra.Command {
	var roundNumber int

	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Generate profit & loss statement",
		Long: `Generate a profit & loss (P&L) statement for one round or the whole game.

The P&L statement shows:
- Total revenue by category
- Total expenses by category
- Net profit (revenue - expenses)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			query := &queries.GetProfitLossQuery{SessionID: id}
			if roundNumber > 0 {
				query.Round = &roundNumber
			}
			return withApp(func(a *app) error {
				result, err := a.send(id, query)
				if err != nil {
					return fmt.Errorf("failed to generate P&L report: %w", err)
				}
				displayProfitLoss(result.(*queries.GetProfitLossResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&roundNumber, "round", 0, "Limit the statement to one round")

	return cmd
}

// newLedgerCashFlowCommand creates the cash flow report subcommand
func newLedgerCashFlowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cash-flow",
		Short: "Generate cash flow statement by round",
		Long: `Generate a cash flow statement grouped by round.

The cash flow statement shows, per round:
- Total inflow and outflow
- Net cash flow
- Number of transactions
- Closing balance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				result, err := a.send(id, &queries.GetCashFlowQuery{SessionID: id})
				if err != nil {
					return fmt.Errorf("failed to generate cash flow report: %w", err)
				}
				displayCashFlow(result.(*queries.GetCashFlowResponse))
				return nil
			})
		},
	}
}

// displayTransactionList formats and displays transaction list
func displayTransactionList(response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Println("No transactions found")
		return
	}

	fmt.Printf("\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Round\tTimestamp\tType\tAmount\tBalance\tDescription")
	fmt.Fprintln(w, "─────\t─────────\t────\t──────\t───────\t───────────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.Round,
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Type,
			formatAmount(tx.Amount),
			formatCredits(tx.BalanceAfter),
			tx.Description,
		)
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("Total: %d transactions\n\n", response.Total)
}

// displayProfitLoss formats and displays P&L report
func displayProfitLoss(response *queries.GetProfitLossResponse) {
	fmt.Printf("\nPROFIT & LOSS STATEMENT\n")
	fmt.Printf("Period: %s\n", response.Period)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	fmt.Println("\nREVENUE")
	for _, category := range sortedKeys(response.RevenueBreakdown) {
		fmt.Printf("  %-25s %s\n", category+":", formatCredits(response.RevenueBreakdown[category]))
	}
	fmt.Println("                          ─────────────")
	fmt.Printf("  %-25s %s\n", "Total Revenue:", formatCredits(response.TotalRevenue))

	fmt.Println("\nEXPENSES")
	for _, category := range sortedKeys(response.ExpenseBreakdown) {
		fmt.Printf("  %-25s %s\n", category+":", formatCredits(-response.ExpenseBreakdown[category]))
	}
	fmt.Println("                          ─────────────")
	fmt.Printf("  %-25s %s\n", "Total Expenses:", formatCredits(-response.TotalExpenses))

	fmt.Println("\n─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("NET PROFIT:               %s\n", formatAmount(response.NetProfit))
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
}

// displayCashFlow formats and displays cash flow report
func displayCashFlow(response *queries.GetCashFlowResponse) {
	if len(response.Rounds) == 0 {
		fmt.Println("No transactions found")
		return
	}

	fmt.Printf("\nCASH FLOW STATEMENT (By Round)\n")
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Round\tInflow\tOutflow\tNet Flow\tTransactions\tClosing")
	fmt.Fprintln(w, "─────\t──────\t───────\t────────\t────────────\t───────")

	rounds := append([]*queries.RoundCashFlow(nil), response.Rounds...)
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	totalInflow := 0
	totalOutflow := 0
	totalNetFlow := 0
	totalTransactions := 0

	for _, r := range rounds {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			r.Round,
			formatCredits(r.TotalInflow),
			formatCredits(-r.TotalOutflow),
			formatAmount(r.NetFlow),
			r.Transactions,
			formatCredits(r.ClosingBalance),
		)
		totalInflow += r.TotalInflow
		totalOutflow += r.TotalOutflow
		totalNetFlow += r.NetFlow
		totalTransactions += r.Transactions
	}

	fmt.Fprintln(w, "─────\t──────\t───────\t────────\t────────────\t───────")
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t%d\t\n",
		formatCredits(totalInflow),
		formatCredits(-totalOutflow),
		formatAmount(totalNetFlow),
		totalTransactions,
	)

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
}

// formatAmount formats an amount with +/- sign
func formatAmount(amount int) string {
	if amount >= 0 {
		return fmt.Sprintf("+%s", formatCredits(amount))
	}
	return formatCredits(amount)
}

// formatCredits formats currency with thousands separator
func formatCredits(credits int) string {
	if credits < 0 {
		return "-" + addThousandsSeparator(-credits)
	}
	return addThousandsSeparator(credits)
}

// addThousandsSeparator adds commas to a number (e.g., 1234567 -> "1,234,567")
func addThousandsSeparator(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Insert commas from right to left
	var result []byte
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func joinValues[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}
