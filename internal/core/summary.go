package core

// Summary holds the dashboard aggregates for a transaction set. Derived,
// never persisted or cached: recomputed on every request.
type Summary struct {
	TotalIncome      Money `json:"totalIncome"`
	TotalExpenses    Money `json:"totalExpenses"`
	NetIncome        Money `json:"netIncome"`
	TransactionCount int   `json:"transactionCount"`
}

// Summarize reduces a transaction set to its totals. Pure and total: empty
// input yields the zero summary, input order is irrelevant, and sums are
// exact cents arithmetic.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
		s.TransactionCount++
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}
