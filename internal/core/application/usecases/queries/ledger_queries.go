package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrListLedgerQueryIsNotConstructed = errors.New(
		"ListLedgerQuery must be created via NewListLedgerQuery constructor",
	)
	ErrVerifyLedgerQueryIsNotConstructed = errors.New(
		"VerifyLedgerQuery must be created via NewVerifyLedgerQuery constructor",
	)
)

// LedgerEntryView is one inventory transaction.
type LedgerEntryView struct {
	ID        kernel.UUID
	PaperID   kernel.UUID
	Sequence  int64
	Type      stock.TxType
	Quantity  int
	JobID     *kernel.UUID
	ActorID   string
	Notes     string
	CreatedAt time.Time
}

// ListLedgerQuery lists the entries of a paper in sequence order, optionally only those
// of one job.
type ListLedgerQuery struct {
	paperID kernel.UUID
	jobID   *kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListLedgerQuery(paperID kernel.UUID, jobID *kernel.UUID) (ListLedgerQuery, error) {
	if err := paperID.Validate(); err != nil {
		return ListLedgerQuery{}, errs.NewValueIsRequiredErrorWithCause("paper id", err)
	}
	if jobID != nil {
		if err := jobID.Validate(); err != nil {
			return ListLedgerQuery{}, errs.NewValueIsInvalidErrorWithCause("job id", err)
		}
	}
	return ListLedgerQuery{paperID: paperID, jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListLedgerQuery) Validate() error {
	return q.guard.Validate(ErrListLedgerQueryIsNotConstructed)
}

func (q ListLedgerQuery) PaperID() kernel.UUID { return q.paperID }
func (q ListLedgerQuery) JobID() *kernel.UUID  { return q.jobID }

// VerifyLedgerQuery replays the ledger of one paper, or of every paper when built without
// an id, and compares the result with the stored counters.
type VerifyLedgerQuery struct {
	paperID *kernel.UUID
	guard   guard.ConstructorGuard
}

func NewVerifyLedgerQuery(paperID *kernel.UUID) (VerifyLedgerQuery, error) {
	if paperID != nil {
		if err := paperID.Validate(); err != nil {
			return VerifyLedgerQuery{}, errs.NewValueIsInvalidErrorWithCause("paper id", err)
		}
	}
	return VerifyLedgerQuery{paperID: paperID, guard: guard.NewConstructorGuard()}, nil
}

func (q VerifyLedgerQuery) Validate() error {
	return q.guard.Validate(ErrVerifyLedgerQueryIsNotConstructed)
}

func (q VerifyLedgerQuery) PaperID() *kernel.UUID { return q.paperID }

// LedgerReport is the outcome of replaying one paper's ledger. Problem is set when the
// replay itself fails (a gap or an entry that breaks the counters) or when the stored
// counters differ from the replay. AsOfSequence is the last entry the stored counters
// include; later entries are not replayed.
type LedgerReport struct {
	PaperID      kernel.UUID
	Stored       stock.Counters
	Replayed     stock.Counters
	Entries      int
	AsOfSequence int64
	Consistent   bool
	Problem      string
}
