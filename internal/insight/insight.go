// Package insight asks an external text-generation service for a prose audit
// of the ledger. The response is opaque text; every failure path degrades to
// one fixed fallback message.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"ohda/internal/core"
)

// Fallback is shown whenever the service is unconfigured, unreachable, or
// returns nothing usable. It never varies, so the UI can rely on it.
const Fallback = "Unable to generate financial insights at this time / لا يمكن توليد التحليلات حالياً."

// TextGenerator is the outbound port to a text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Requester builds the audit prompt from a ledger snapshot and forwards it.
// A nil generator means no credential was configured; Audit then returns the
// fallback immediately.
type Requester struct {
	gen     TextGenerator
	timeout time.Duration
}

func NewRequester(gen TextGenerator, timeout time.Duration) *Requester {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Requester{gen: gen, timeout: timeout}
}

// Audit returns the service's free-text findings for the given snapshot, or
// the fallback string. It never returns an error.
func (r *Requester) Audit(ctx context.Context, items []core.Transaction) string {
	if r.gen == nil {
		slog.WarnContext(ctx, "Insight service not configured, returning fallback")
		return Fallback
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.gen.Generate(cctx, BuildPrompt(items))
	if err != nil {
		slog.ErrorContext(ctx, "Insight generation failed", "error", err)
		return Fallback
	}
	if strings.TrimSpace(text) == "" {
		slog.WarnContext(ctx, "Insight service returned empty response")
		return Fallback
	}
	return text
}

// BuildPrompt embeds the aggregate figures in the audit instruction template.
// The receipt ratio uses the same predicate as the settlement report.
func BuildPrompt(items []core.Transaction) string {
	stats := core.ComputeStats(items)

	expenses := 0
	withReceipts := 0
	seen := make(map[string]struct{})
	var categories []string
	for _, t := range items {
		if t.Type != core.Expense {
			continue
		}
		expenses++
		if t.HasReceipt() {
			withReceipts++
		}
		if _, ok := seen[t.Category]; !ok {
			seen[t.Category] = struct{}{}
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	return fmt.Sprintf(`Analyze this Petty Cash (العهدة) financial data and provide 4 professional insights in bullet points (Bilingual: English & Arabic).

Summary Data:
- Total Transactions: %d
- Total Deposits: %s EGP
- Total Expenses: %s EGP
- Digital Archives: %d out of %d expenses have digital receipts attached.
- Categories: [%s]

Focus on:
1. Highest spending categories.
2. Budget sustainability and burn rate.
3. Compliance and Audit health (based on receipt availability).
4. Suggestions for cost optimization.

Provide a professional tone suitable for a financial manager.`,
		stats.Count,
		stats.TotalBudget.String(),
		stats.TotalExpenses.String(),
		withReceipts,
		expenses,
		strings.Join(quoted, ","),
	)
}
