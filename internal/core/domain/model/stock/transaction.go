package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

// ErrTransactionIsNotConstructed is returned for a Transaction not built by a constructor.
var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via PaperStock.Record")

// TxType is the wire-visible ledger entry type.
type TxType string

const (
	TxIn      TxType = "in"
	TxOut     TxType = "out"
	TxReserve TxType = "reserve"
	TxRelease TxType = "release"
	TxConsume TxType = "consume"
	TxAdjust  TxType = "adjust"
)

func ParseTxType(s string) (TxType, error) {
	t := TxType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t TxType) Validate() error {
	switch t {
	case TxIn, TxOut, TxReserve, TxRelease, TxConsume, TxAdjust:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("transaction type", fmt.Errorf("%q is not a valid type", string(t)))
	}
}

func (t TxType) String() string {
	return string(t)
}

// IsSigned reports whether the entry quantity may be negative.
func (t TxType) IsSigned() bool {
	return t == TxAdjust
}

// Entry is a ledger append request before it is sequenced.
type Entry struct {
	Type     TxType
	Quantity int
	JobID    *kernel.UUID
	ActorID  string
	Notes    string
}

// Validate checks the parts of an entry that do not depend on the paper's counters.
func (e Entry) Validate() error {
	if err := e.Type.Validate(); err != nil {
		return err
	}
	var jobErr error
	if e.JobID != nil {
		jobErr = e.JobID.Validate()
	} else if e.Type == TxConsume {
		jobErr = errs.NewValueIsRequiredError("job id")
	}
	var actorErr error
	if strings.TrimSpace(e.ActorID) == "" {
		actorErr = errs.NewValueIsRequiredError("actor id")
	}
	return errors.Join(
		kernel.ValidateSheets("quantity", e.Quantity, e.Type.IsSigned()),
		jobErr,
		actorErr,
	)
}

// Transaction is an immutable ledger entry. Sequence is the per-paper commit order.
type Transaction struct {
	id        kernel.UUID
	paperID   kernel.UUID
	txType    TxType
	quantity  int
	jobID     *kernel.UUID
	actorID   string
	notes     string
	sequence  int64
	createdAt time.Time

	guard guard.ConstructorGuard
}

// TransactionSnapshot is the persistence view of a Transaction.
type TransactionSnapshot struct {
	ID        kernel.UUID
	PaperID   kernel.UUID
	Type      TxType
	Quantity  int
	JobID     *kernel.UUID
	ActorID   string
	Notes     string
	Sequence  int64
	CreatedAt time.Time
}

// RestoreTransaction rebuilds a ledger entry read from storage.
func RestoreTransaction(s TransactionSnapshot) (*Transaction, error) {
	entry := Entry{Type: s.Type, Quantity: s.Quantity, JobID: s.JobID, ActorID: s.ActorID, Notes: s.Notes}
	var seqErr error
	if s.Sequence <= 0 {
		seqErr = errs.NewValueIsOutOfRangeError("sequence", s.Sequence, 1, "unbounded")
	}
	if err := errors.Join(s.ID.Validate(), s.PaperID.Validate(), entry.Validate(), seqErr); err != nil {
		return nil, err
	}
	return newTransaction(s.ID, s.PaperID, entry, s.Sequence, s.CreatedAt), nil
}

func newTransaction(id, paperID kernel.UUID, e Entry, sequence int64, at time.Time) *Transaction {
	var jobID *kernel.UUID
	if e.JobID != nil {
		j := *e.JobID
		jobID = &j
	}
	return &Transaction{
		id:        id,
		paperID:   paperID,
		txType:    e.Type,
		quantity:  e.Quantity,
		jobID:     jobID,
		actorID:   strings.TrimSpace(e.ActorID),
		notes:     e.Notes,
		sequence:  sequence,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}
}

func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

func (t *Transaction) ID() kernel.UUID      { return t.id }
func (t *Transaction) PaperID() kernel.UUID { return t.paperID }
func (t *Transaction) Type() TxType         { return t.txType }
func (t *Transaction) Quantity() int        { return t.quantity }
func (t *Transaction) JobID() *kernel.UUID  { return t.jobID }
func (t *Transaction) ActorID() string      { return t.actorID }
func (t *Transaction) Notes() string        { return t.notes }
func (t *Transaction) Sequence() int64      { return t.sequence }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// Snapshot exports the entry for persistence.
func (t *Transaction) Snapshot() TransactionSnapshot {
	return TransactionSnapshot{
		ID:        t.id,
		PaperID:   t.paperID,
		Type:      t.txType,
		Quantity:  t.quantity,
		JobID:     t.jobID,
		ActorID:   t.actorID,
		Notes:     t.notes,
		Sequence:  t.sequence,
		CreatedAt: t.createdAt,
	}
}
