package ledger

import "ohda/internal/core"

// Ports consumed by the HTTP layer.
type (
	Reader interface {
		Snapshot() []core.Transaction
		Get(id string) (core.Transaction, bool)
		Revision() uint64
	}

	Writer interface {
		Add(t core.Transaction) (core.Transaction, error)
		Update(id string, t core.Transaction) (found bool, err error)
		Remove(id string) bool
	}
)
