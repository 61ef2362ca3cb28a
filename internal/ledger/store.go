// Package ledger holds the session-scoped transaction store. Everything lives
// in process memory; a restart starts an empty ledger.
package ledger

import (
	"sync"

	"github.com/google/uuid"

	"ohda/internal/core"
)

// Store keeps the ordered transaction collection. New records are prepended;
// display order is re-derived by the view functions, never by the store.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
	rev   uint64
}

func New() *Store {
	return &Store{}
}

// Add validates the record, assigns a fresh id, and prepends it. The store is
// left untouched on validation failure.
func (s *Store) Add(t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction{t}, s.items...)
	s.rev++
	return t, nil
}

// Update replaces all mutable fields of the record with the given id,
// including clearing the receipt. An unknown id is a silent no-op: found is
// false and the store is unchanged.
func (s *Store) Update(id string, t core.Transaction) (found bool, err error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			t.ID = id
			s.items[i] = t
			s.rev++
			return true, nil
		}
	}
	return false, nil
}

// Remove deletes the record with the given id. Unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.rev++
			return true
		}
	}
	return false
}

// Get returns the record with the given id, if present.
func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Snapshot returns a copy of the current collection. Derived views are always
// computed from a fresh snapshot, so a mutation is visible on the next read.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Revision is a counter bumped on every mutation. Anything memoized over a
// snapshot keys on it, which keeps cached output from outliving a change.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
