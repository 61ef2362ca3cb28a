package http

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"ohda/internal/core"
)

// formView backs the transaction entry form partial. Token identifies this
// form instance for the receipt-upload guard.
type formView struct {
	Token        string
	EditingID    string
	Date         string
	Description  string
	Amount       string
	BillNumber   string
	Category     string
	Type         core.TransactionType
	InvoiceImage template.URL
	Categories   []string
}

func emptyFormView() formView {
	return formView{
		Token:      generateFormToken(),
		Date:       todayISO(),
		Category:   "Personal",
		Type:       core.Expense,
		Categories: core.DefaultCategories,
	}
}

// rowView is one rendered transaction in the searchable list.
type rowView struct {
	ID          string
	Date        string
	Description string
	Amount      string
	BillNumber  string
	Category    string
	IsExpense   bool
	HasReceipt  bool
}

func (s *Server) handleLedgerPage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Active string
		Form   formView
	}{Active: "ledger", Form: emptyFormView()}
	if err := s.templates.ExecuteTemplate(w, "ledger_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Ledger page template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleTransactionForm returns the entry form partial: blank by default,
// prefilled when an id query parameter names an existing record.
func (s *Server) handleTransactionForm(w http.ResponseWriter, r *http.Request) {
	form := emptyFormView()
	if id := sanitizeInput(r.URL.Query().Get("id")); id != "" {
		if t, ok := s.reader.Get(id); ok {
			form.EditingID = t.ID
			form.Date = t.Date
			form.Description = t.Description
			form.Amount = t.Amount.String()
			form.BillNumber = t.BillNumber
			form.Category = t.Category
			form.Type = t.Type
			form.InvoiceImage = template.URL(t.InvoiceImage)
		} else {
			slog.WarnContext(r.Context(), "Edit requested for unknown transaction", "transaction_id", id)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "transaction_form", form); err != nil {
		slog.ErrorContext(r.Context(), "Form template failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) handleTransactionRows(w http.ResponseWriter, r *http.Request) {
	query := sanitizeInput(r.URL.Query().Get("q"))
	matches := core.Search(s.reader.Snapshot(), query)

	rows := make([]rowView, 0, len(matches))
	for _, t := range matches {
		rows = append(rows, rowView{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      formatAmount(t.Amount),
			BillNumber:  t.BillNumber,
			Category:    t.Category,
			IsExpense:   t.Type == core.Expense,
			HasReceipt:  t.HasReceipt(),
		})
	}

	data := struct {
		Query string
		Rows  []rowView
	}{Query: query, Rows: rows}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "transaction_rows", data); err != nil {
		slog.ErrorContext(r.Context(), "Transaction rows template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Error rendering transactions</div>`))
	}
}

// parseTransactionForm builds a transaction from the submitted form. The
// message in the returned error is already user-facing.
func parseTransactionForm(r *http.Request) (core.Transaction, error) {
	desc := sanitizeInput(r.Form.Get("description"))
	if desc == "" {
		return core.Transaction{}, fmt.Errorf("Description is required / البيان مطلوب")
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("Invalid amount / قيمة غير صالحة")
	}

	date := sanitizeInput(r.Form.Get("date"))
	if date == "" {
		date = todayISO()
	}
	if err := core.ValidateDate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("Invalid date / تاريخ غير صالح")
	}

	txType := core.TransactionType(sanitizeInput(r.Form.Get("type")))
	if err := txType.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("Invalid transaction type")
	}

	return core.Transaction{
		Date:         date,
		Description:  desc,
		Amount:       amount,
		BillNumber:   sanitizeInput(r.Form.Get("billNumber")),
		Category:     sanitizeInput(r.Form.Get("category")),
		Type:         txType,
		InvoiceImage: sanitizeInput(r.Form.Get("invoiceImage")),
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	tx, err := parseTransactionForm(r)
	if err != nil {
		UnprocessableEntityError(err.Error()).
			TriggerErrorNotification(err.Error()).
			Write(w)
		return
	}

	stored, err := s.writer.Add(tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to store transaction",
			"error", err,
			"description", tx.Description,
			"operation", "create")
		UnprocessableEntityError("Invalid data: " + err.Error()).
			TriggerErrorNotification("Invalid data").
			Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"transaction_id", stored.ID,
		"type", string(stored.Type),
		"category", stored.Category,
		"operation", "create")

	NewHTMXResponse().
		TriggerLedgerChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Added Successfully / تم الحفظ بنجاح").
		Body(s.renderForm(r, emptyFormView())).
		Header("Content-Type", "text/html; charset=utf-8").
		Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(mux.Vars(r)["id"])
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	tx, err := parseTransactionForm(r)
	if err != nil {
		UnprocessableEntityError(err.Error()).
			TriggerErrorNotification(err.Error()).
			Write(w)
		return
	}

	found, err := s.writer.Update(id, tx)
	if err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).
			TriggerErrorNotification("Invalid data").
			Write(w)
		return
	}

	resp := NewHTMXResponse().
		TriggerLedgerChanged().
		Body(s.renderForm(r, emptyFormView())).
		Header("Content-Type", "text/html; charset=utf-8")

	if found {
		slog.InfoContext(r.Context(), "Transaction updated", "transaction_id", id, "operation", "update")
		resp.TriggerSuccessNotification("Record Updated / تم التحديث")
	} else {
		// Guarded no-op: the UI only offers edit on existing rows.
		slog.WarnContext(r.Context(), "Update for unknown transaction", "transaction_id", id, "operation", "update")
	}
	resp.Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(mux.Vars(r)["id"])
	_ = r.ParseForm()
	editing := sanitizeInput(r.Form.Get("editing"))

	removed := s.writer.Remove(id)

	resp := NewHTMXResponse().TriggerLedgerChanged()
	if removed {
		slog.InfoContext(r.Context(), "Transaction deleted", "transaction_id", id, "operation", "delete")
		resp.TriggerSuccessNotification("Deleted / تم الحذف")
	} else {
		slog.WarnContext(r.Context(), "Delete for unknown transaction", "transaction_id", id, "operation", "delete")
	}

	// Dropping the record that was being edited abandons that edit.
	if editing != "" && editing == id {
		resp.TriggerFormReset()
	}
	resp.Write(w)
}

// renderForm renders the entry form partial to bytes for inline swaps.
func (s *Server) renderForm(r *http.Request, form formView) []byte {
	var buf bytes.Buffer
	if s.templates == nil {
		return nil
	}
	if err := s.templates.ExecuteTemplate(&buf, "transaction_form", form); err != nil {
		slog.ErrorContext(r.Context(), "Form render failed", "error", err)
		return []byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`)
	}
	return buf.Bytes()
}
