package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"ohda/internal/core"
)

type statsView struct {
	TotalBudget   string
	TotalExpenses string
	Balance       string
	Count         int
	Negative      bool
}

type categoryBarView struct {
	Name    string
	Amount  string
	Percent int
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Active string
	}{Active: "dashboard"}
	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := core.ComputeStats(s.reader.Snapshot())

	view := statsView{
		TotalBudget:   formatAmount(stats.TotalBudget),
		TotalExpenses: formatAmount(stats.TotalExpenses),
		Balance:       formatAmount(stats.Balance),
		Count:         stats.Count,
		Negative:      stats.Balance.IsNegative(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "stats_cards", view); err != nil {
		slog.ErrorContext(r.Context(), "Stats template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Error rendering stats</div>`))
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	totals := core.CategoryTotals(s.reader.Snapshot())

	var max decimal.Decimal
	for _, c := range totals {
		if c.Amount.GreaterThan(max) {
			max = c.Amount
		}
	}

	bars := make([]categoryBarView, 0, len(totals))
	for _, c := range totals {
		percent := 0
		if max.IsPositive() {
			percent = int(c.Amount.Div(max).Mul(decimal.NewFromInt(100)).IntPart())
			if percent < 2 {
				percent = 2
			}
			if percent > 100 {
				percent = 100
			}
		}
		bars = append(bars, categoryBarView{
			Name:    c.Name,
			Amount:  formatAmount(c.Amount),
			Percent: percent,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "category_bars", struct {
		Bars []categoryBarView
	}{Bars: bars}); err != nil {
		slog.ErrorContext(r.Context(), "Category template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Error rendering categories</div>`))
	}
}
