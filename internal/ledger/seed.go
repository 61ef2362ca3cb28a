package ledger

import (
	"github.com/shopspring/decimal"

	"ohda/internal/core"
)

// DemoTransactions returns the sample rows used when SEED_DEMO is enabled:
// an opening deposit and two categorized expenses.
func DemoTransactions() []core.Transaction {
	return []core.Transaction{
		{
			Date:        "2023-10-01",
			Description: "Initial Deposit / رصيد أول المدة",
			Amount:      decimal.NewFromInt(20000),
			BillNumber:  "DEP-001",
			Category:    "Deposit",
			Type:        core.Deposit,
		},
		{
			Date:        "2023-10-05",
			Description: "Mindmapp fees / رسوم مايند ماب",
			Amount:      decimal.NewFromInt(1500),
			BillNumber:  "INV-102",
			Category:    "Fees",
			Type:        core.Expense,
		},
		{
			Date:        "2023-10-10",
			Description: "Internet bill / فاتورة إنترنت",
			Amount:      decimal.NewFromInt(650),
			BillNumber:  "TEL-55",
			Category:    "Internet",
			Type:        core.Expense,
		},
	}
}

// Seed adds the given records in order, assigning fresh ids. Invalid records
// are skipped rather than aborting the rest.
func (s *Store) Seed(items []core.Transaction) int {
	added := 0
	// Add prepends, so walk backwards to keep the given order.
	for i := len(items) - 1; i >= 0; i-- {
		if _, err := s.Add(items[i]); err == nil {
			added++
		}
	}
	return added
}
