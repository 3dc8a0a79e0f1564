package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
)

// Ledger appends inventory transactions. Every append for a paper runs in its own
// storage transaction holding the paper row lock, so entries of one paper are
// linearized in commit order and different papers never block each other.
type Ledger interface {
	// Append locks the paper, validates entry against the counters and the job's reserved
	// balance, stores the sequenced entry, updates the counters and stores events, all or
	// nothing. Validation failures come back as typed errors and leave nothing behind.
	Append(ctx context.Context, paperID kernel.UUID, entry stock.Entry, events ...*timeline.Event) (*stock.Transaction, error)

	// History returns the paper's entries in sequence order.
	History(ctx context.Context, paperID kernel.UUID) ([]*stock.Transaction, error)
}
