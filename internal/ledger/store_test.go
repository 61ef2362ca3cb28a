package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ohda/internal/core"
)

func validTx() core.Transaction {
	return core.Transaction{
		Date:        "2024-05-01",
		Description: "office supplies",
		Amount:      decimal.NewFromInt(120),
		Category:    "Supplies",
		Type:        core.Expense,
	}
}

func TestAddAssignsIDAndPrepends(t *testing.T) {
	s := New()
	first, err := s.Add(validTx())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected assigned id")
	}

	second, err := s.Add(validTx())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("ids must be unique")
	}

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	if snap[0].ID != second.ID {
		t.Fatalf("newest record must sit at the front")
	}
}

func TestAddRejectsInvalidWithoutMutating(t *testing.T) {
	s := New()
	bad := validTx()
	bad.Description = ""
	if _, err := s.Add(bad); !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("store mutated on validation failure")
	}
	if s.Revision() != 0 {
		t.Fatalf("revision bumped on rejected add")
	}
}

func TestUpdateReplacesFieldsAndKeepsID(t *testing.T) {
	s := New()
	orig, _ := s.Add(validTx())

	edited := validTx()
	edited.Description = "edited"
	edited.Amount = decimal.NewFromInt(300)
	edited.InvoiceImage = "" // clearing the receipt is a legal edit

	found, err := s.Update(orig.ID, edited)
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}
	got, ok := s.Get(orig.ID)
	if !ok {
		t.Fatalf("record vanished after update")
	}
	if got.Description != "edited" || got.Amount.String() != "300" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if got.ID != orig.ID {
		t.Fatalf("id must be immutable")
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.Add(validTx())
	rev := s.Revision()

	found, err := s.Update("missing", validTx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false")
	}
	if s.Revision() != rev {
		t.Fatalf("no-op update must not bump revision")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	keep, _ := s.Add(validTx())
	gone, _ := s.Add(validTx())

	if !s.Remove(gone.ID) {
		t.Fatalf("expected removal")
	}
	if s.Remove(gone.ID) {
		t.Fatalf("second removal must be a no-op")
	}
	if _, ok := s.Get(keep.ID); !ok {
		t.Fatalf("unrelated record removed")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

// Create followed by delete of the same record restores the prior contents,
// ignoring id assignment.
func TestCreateDeleteRoundTrip(t *testing.T) {
	s := New()
	s.Add(validTx())
	before := s.Snapshot()

	extra, _ := s.Add(validTx())
	s.Remove(extra.ID)

	after := s.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("len %d != %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("record %d changed: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Add(validTx())
	snap := s.Snapshot()
	snap[0].Description = "tampered"
	fresh := s.Snapshot()
	if fresh[0].Description == "tampered" {
		t.Fatalf("snapshot aliases store memory")
	}
}

func TestRevisionBumpsOnEveryMutation(t *testing.T) {
	s := New()
	if s.Revision() != 0 {
		t.Fatalf("fresh store revision = %d", s.Revision())
	}
	tx, _ := s.Add(validTx())
	s.Update(tx.ID, validTx())
	s.Remove(tx.ID)
	if s.Revision() != 3 {
		t.Fatalf("revision = %d, want 3", s.Revision())
	}
}

func TestSeedKeepsGivenOrder(t *testing.T) {
	s := New()
	if n := s.Seed(DemoTransactions()); n != 3 {
		t.Fatalf("seeded %d, want 3", n)
	}
	snap := s.Snapshot()
	if snap[0].Category != "Deposit" || snap[2].Category != "Internet" {
		t.Fatalf("seed order not preserved: %+v", snap)
	}
}
