package ledger

// ProfitLoss summarises transactions by category
type ProfitLoss struct {
	TotalRevenue     int
	TotalExpenses    int
	NetProfit        int
	RevenueBreakdown map[Category]int
	ExpenseBreakdown map[Category]int
}

// BuildProfitLoss groups transactions into income and expenses.
// Expenses are reported as positive amounts.
func BuildProfitLoss(transactions []*Transaction) ProfitLoss {
	pl := ProfitLoss{
		RevenueBreakdown: make(map[Category]int),
		ExpenseBreakdown: make(map[Category]int),
	}
	for _, tx := range transactions {
		if tx.IsIncome() {
			pl.RevenueBreakdown[tx.Category()] += tx.Amount()
			pl.TotalRevenue += tx.Amount()
		} else {
			pl.ExpenseBreakdown[tx.Category()] -= tx.Amount()
			pl.TotalExpenses -= tx.Amount()
		}
	}
	pl.NetProfit = pl.TotalRevenue - pl.TotalExpenses
	return pl
}
