package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2023-10-01", true},
		{"2025-12-31", true},
		{"2025-02-30", false},
		{"2025-13-01", false},
		{"01/10/2023", false},
		{"", false},
	}
	for i, tc := range cases {
		err := ValidateDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q) expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q) expected error", i, tc.in)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"0", "0", true},
		{"20000", "20000", true},
		{"  1.50 ", "1.5", true},
		{"", "", false},
		{"abc", "", false},
		{"-5", "", false},
		{"+5", "", false},
		{"1.2.3", "", false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q) expected ok, got %v", i, tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("case %d (%q) got %s, want %s", i, tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("case %d (%q) expected ErrInvalidAmount, got %v", i, tc.in, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        "2023-10-05",
		Description: "Mindmapp fees",
		Amount:      decimal.NewFromInt(1500),
		Category:    "Fees",
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		mutate func(*Transaction)
		want   error
	}{
		{func(x *Transaction) { x.Date = "not-a-date" }, ErrInvalidDate},
		{func(x *Transaction) { x.Description = "   " }, ErrEmptyDescription},
		{func(x *Transaction) { x.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{func(x *Transaction) { x.Type = "Transfer" }, ErrInvalidType},
	}
	for i, tc := range bads {
		x := good
		tc.mutate(&x)
		if err := x.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}

	long := good
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for overlong description")
	}
}

func TestHasReceipt(t *testing.T) {
	if (Transaction{}).HasReceipt() {
		t.Fatalf("empty payload should mean no receipt")
	}
	withImg := Transaction{InvoiceImage: "data:image/png;base64,AAAA"}
	if !withImg.HasReceipt() {
		t.Fatalf("expected receipt present")
	}
}
