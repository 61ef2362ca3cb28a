package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ohda/internal/core"
)

const defaultReportTitle = "3ohda Settlement Report / تقرير تسوية العهدة"

type settlementRowView struct {
	Index       int
	Date        string
	Description string
	BillNumber  string
	Category    string
	Amount      string
	HasReceipt  bool
}

type settlementView struct {
	Title        string
	From         string
	To           string
	Reference    string
	GeneratedAt  string
	Rows         []settlementRowView
	TotalAmount  string
	ItemCount    int
	InvoiceCount int
}

func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Active string
		Title  string
		From   string
		To     string
	}{
		Active: "report",
		Title:  defaultReportTitle,
		From:   firstOfMonthISO(),
		To:     todayISO(),
	}
	if err := s.templates.ExecuteTemplate(w, "report_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Report page template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSettlement(w http.ResponseWriter, r *http.Request) {
	from := sanitizeInput(r.URL.Query().Get("from"))
	to := sanitizeInput(r.URL.Query().Get("to"))
	title := sanitizeInput(r.URL.Query().Get("title"))
	if title == "" {
		title = defaultReportTitle
	}

	if err := core.ValidateDate(from); err != nil {
		BadRequestError("Invalid start date / تاريخ بداية غير صالح").Write(w)
		return
	}
	if err := core.ValidateDate(to); err != nil {
		BadRequestError("Invalid end date / تاريخ نهاية غير صالح").Write(w)
		return
	}

	report := core.Settlement(s.reader.Snapshot(), from, to)

	rows := make([]settlementRowView, 0, len(report.Items))
	for i, t := range report.Items {
		rows = append(rows, settlementRowView{
			Index:       i + 1,
			Date:        t.Date,
			Description: t.Description,
			BillNumber:  t.BillNumber,
			Category:    t.Category,
			Amount:      formatAmount(t.Amount),
			HasReceipt:  t.HasReceipt(),
		})
	}

	view := settlementView{
		Title:        title,
		From:         from,
		To:           to,
		Reference:    fmt.Sprintf("SETT-%d", time.Now().Unix()),
		GeneratedAt:  time.Now().Format("2006-01-02 15:04"),
		Rows:         rows,
		TotalAmount:  formatAmount(report.TotalAmount),
		ItemCount:    len(report.Items),
		InvoiceCount: report.TotalInvoices,
	}

	slog.InfoContext(r.Context(), "Settlement report generated",
		"from", from,
		"to", to,
		"items", view.ItemCount,
		"operation", "settlement")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "settlement_report", view); err != nil {
		slog.ErrorContext(r.Context(), "Settlement template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Error rendering report</div>`))
	}
}
