package stock

import (
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// Counters are the stock figures derived from the ledger.
type Counters struct {
	Total    int
	Reserved int
}

// Available is total minus reserved. It is never stored.
func (c Counters) Available() int {
	return c.Total - c.Reserved
}

// Valid reports whether 0 <= reserved <= total.
func (c Counters) Valid() bool {
	return c.Reserved >= 0 && c.Reserved <= c.Total
}

// Apply folds one entry into the counters. jobReserved is the amount currently reserved
// for the entry's job on this paper; it bounds consume and job-scoped release.
// The receiver is never modified; on error the caller keeps its old counters.
func (c Counters) Apply(paperID string, t TxType, quantity int, jobReserved int) (Counters, error) {
	next := c
	switch t {
	case TxIn:
		next.Total += quantity
	case TxOut:
		if quantity > c.Available() {
			return c, errs.NewInsufficientStockError(paperID, "issue", quantity, c.Available())
		}
		next.Total -= quantity
	case TxReserve:
		if quantity > c.Available() {
			return c, errs.NewInsufficientStockError(paperID, "reserve", quantity, c.Available())
		}
		next.Reserved += quantity
	case TxRelease:
		if quantity > c.Reserved || quantity > jobReserved {
			return c, errs.NewOverReleaseSheetsError(paperID, quantity, min(c.Reserved, jobReserved))
		}
		next.Reserved -= quantity
	case TxConsume:
		if quantity > c.Reserved || quantity > jobReserved {
			return c, errs.NewDoubleConsumeSheetsError(paperID, quantity, min(c.Reserved, jobReserved))
		}
		next.Reserved -= quantity
		next.Total -= quantity
	case TxAdjust:
		next.Total += quantity
		if next.Total < next.Reserved {
			return c, errs.NewInsufficientStockError(paperID, "adjust", -quantity, c.Available())
		}
	default:
		return c, t.Validate()
	}
	return next, nil
}

// JobBalances tracks reserved sheets per job while folding a ledger.
type JobBalances map[kernel.UUID]int

// Apply updates the balance of the entry's job after the entry was accepted.
func (b JobBalances) Apply(t TxType, quantity int, jobID *kernel.UUID) {
	if jobID == nil {
		return
	}
	switch t {
	case TxReserve:
		b[*jobID] += quantity
	case TxRelease, TxConsume:
		b[*jobID] -= quantity
	}
}

// Of returns the reserved balance of a job; nil means no job scope.
func (b JobBalances) Of(jobID *kernel.UUID, fallback int) int {
	if jobID == nil {
		return fallback
	}
	return b[*jobID]
}

// Replay folds a ledger from zero in sequence order. It fails on a gap or on the first
// entry that would break the counters' invariant, naming the offending sequence number.
func Replay(paperID kernel.UUID, txs []*Transaction) (Counters, error) {
	var c Counters
	jobs := JobBalances{}
	var last int64
	for _, tx := range txs {
		if !tx.PaperID().IsEqual(paperID) {
			return c, errs.NewValueIsInvalidErrorWithCause("ledger",
				fmt.Errorf("entry %s belongs to paper %s", tx.ID(), tx.PaperID()))
		}
		if tx.Sequence() != last+1 {
			return c, errs.NewValueIsInvalidErrorWithCause("ledger",
				fmt.Errorf("sequence %d follows %d", tx.Sequence(), last))
		}
		next, err := c.Apply(paperID.String(), tx.Type(), tx.Quantity(), jobs.Of(tx.JobID(), c.Reserved))
		if err != nil {
			return c, fmt.Errorf("replay of sequence %d: %w", tx.Sequence(), err)
		}
		jobs.Apply(tx.Type(), tx.Quantity(), tx.JobID())
		c = next
		last = tx.Sequence()
	}
	return c, nil
}
