package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Deposit TransactionType = "Deposit"
	Expense TransactionType = "Expense"
)

type (
	TransactionType string

	// Transaction is a single petty-cash ledger record. Amount is always a
	// positive magnitude; direction comes from Type alone.
	Transaction struct {
		ID           string
		Date         string // ISO YYYY-MM-DD
		Description  string
		Amount       decimal.Decimal
		BillNumber   string
		Category     string
		Type         TransactionType
		InvoiceImage string // inline data URL; empty means no receipt on file
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("invalid transaction type")
)

// DefaultCategories seeds the entry form. Category stays an open string in the
// data model: stored records may carry any user-entered value.
var DefaultCategories = []string{
	"Internet", "Fees", "Personal", "Supplies", "Transport", "Utilities", "Maintenance", "Deposit",
}

const dateLayout = "2006-01-02"

// ValidateDate checks that s is a real calendar date in ISO form. Dates are
// kept as strings so range filters compare them lexicographically.
func ValidateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Deposit, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (t Transaction) Validate() error {
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return t.Type.Validate()
}

// HasReceipt reports whether an invoice image is attached. The settlement
// report's invoice count and the audit prompt's archive ratio both use this
// predicate.
func (t Transaction) HasReceipt() bool {
	return t.InvoiceImage != ""
}
