package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Stats are the dashboard aggregates, recomputed fresh from a snapshot on
// every read. Balance may go negative.
type Stats struct {
	TotalBudget   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	Count         int
}

// CategoryAmount is one bar of the category breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// SettlementReport is the date-bounded, expense-only view used for
// reimbursement sign-off. Items are sorted oldest first so the report reads
// chronologically.
type SettlementReport struct {
	Items         []Transaction
	TotalAmount   decimal.Decimal
	TotalInvoices int
}

// ComputeStats sums deposits and expenses over the snapshot.
func ComputeStats(items []Transaction) Stats {
	s := Stats{
		TotalBudget:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Count:         len(items),
	}
	for _, t := range items {
		switch t.Type {
		case Deposit:
			s.TotalBudget = s.TotalBudget.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.Balance = s.TotalBudget.Sub(s.TotalExpenses)
	return s
}

// CategoryTotals sums expense amounts per category. Deposits never
// contribute, and categories whose expense sum is zero are omitted entirely.
// Output order is amount-descending for display; callers must not treat it as
// a contract.
func CategoryTotals(items []Transaction) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range items {
		if t.Type != Expense {
			continue
		}
		cur, ok := sums[t.Category]
		if !ok {
			cur = decimal.Zero
		}
		sums[t.Category] = cur.Add(t.Amount)
	}
	out := make([]CategoryAmount, 0, len(sums))
	for name, amt := range sums {
		if amt.IsZero() {
			continue
		}
		out = append(out, CategoryAmount{Name: name, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Equal(out[j].Amount) {
			return out[i].Name < out[j].Name
		}
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// Search returns the records whose description, reference number, or category
// contains the query, case-insensitively. An empty query matches everything.
// The result is sorted newest first; equal dates keep insertion order. The
// input slice is never mutated.
func Search(items []Transaction, query string) []Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Transaction, 0, len(items))
	for _, t := range items {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.BillNumber), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Settlement filters expenses to the inclusive [from, to] date range, oldest
// first. An inverted range (from > to) yields an empty report with zero
// totals; it is not an error.
func Settlement(items []Transaction, from, to string) SettlementReport {
	rep := SettlementReport{TotalAmount: decimal.Zero}
	for _, t := range items {
		if t.Type != Expense {
			continue
		}
		if t.Date < from || t.Date > to {
			continue
		}
		rep.Items = append(rep.Items, t)
		rep.TotalAmount = rep.TotalAmount.Add(t.Amount)
		if t.HasReceipt() {
			rep.TotalInvoices++
		}
	}
	sort.SliceStable(rep.Items, func(i, j int) bool { return rep.Items[i].Date < rep.Items[j].Date })
	return rep
}
