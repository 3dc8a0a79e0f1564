package queries

import (
	"context"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListLedgerQueryHandler struct {
	db *gorm.DB
}

func NewListLedgerQueryHandler(db *gorm.DB) ListLedgerQueryHandler {
	return ListLedgerQueryHandler{db: db}
}

func (h ListLedgerQueryHandler) Handle(ctx context.Context, query ListLedgerQuery) ([]LedgerEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("inventory_transactions").
		Select("id, paper_id, sequence, type, quantity, job_id, actor_id, COALESCE(notes, ''), created_at").
		Where("paper_id = ?", query.PaperID().Bytes())
	if query.JobID() != nil {
		tx = tx.Where("job_id = ?", query.JobID().Bytes())
	}

	rows, err := tx.Order("sequence").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]LedgerEntryView, 0)
	for rows.Next() {
		var (
			v           LedgerEntryView
			id, paperID uuid.UUID
			jobID       *uuid.UUID
			txType      string
		)

		err = rows.Scan(&id, &paperID, &v.Sequence, &txType, &v.Quantity, &jobID, &v.ActorID, &v.Notes, &v.CreatedAt)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.PaperID, err = kernel.UUIDFromBytes(paperID[:]); err != nil {
			return nil, err
		}
		if jobID != nil {
			job, idErr := kernel.UUIDFromBytes(jobID[:])
			if idErr != nil {
				return nil, idErr
			}
			v.JobID = &job
		}
		v.Type = stock.TxType(txType)

		entries = append(entries, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// VerifyLedgerQueryHandler reads entries through ports.Ledger so the replay sees exactly
// what the appender wrote. The counters and last_sequence of a paper are written together
// under the row lock, so reading them in one statement gives a committed snapshot; the
// replay is cut at that sequence and appends committed after it are left out.
type VerifyLedgerQueryHandler struct {
	db     *gorm.DB
	ledger ports.Ledger
}

func NewVerifyLedgerQueryHandler(db *gorm.DB, ledger ports.Ledger) VerifyLedgerQueryHandler {
	return VerifyLedgerQueryHandler{db: db, ledger: ledger}
}

type storedCounters struct {
	ID             uuid.UUID
	TotalSheets    int
	ReservedSheets int
	LastSequence   int64
}

func (h VerifyLedgerQueryHandler) Handle(ctx context.Context, query VerifyLedgerQuery) ([]LedgerReport, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("paper_stock").Select("id, total_sheets, reserved_sheets, last_sequence")
	if query.PaperID() != nil {
		tx = tx.Where("id = ?", query.PaperID().Bytes())
	}

	var papers []storedCounters
	if err := tx.Order("id").Scan(&papers).Error; err != nil {
		return nil, err
	}
	if query.PaperID() != nil && len(papers) == 0 {
		return nil, errs.NewObjectNotFoundError("paper", query.PaperID().String())
	}

	reports := make([]LedgerReport, 0, len(papers))
	for _, p := range papers {
		paperID, err := kernel.UUIDFromBytes(p.ID[:])
		if err != nil {
			return nil, err
		}

		report, err := h.verify(ctx, paperID, stock.Counters{Total: p.TotalSheets, Reserved: p.ReservedSheets}, p.LastSequence)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (h VerifyLedgerQueryHandler) verify(
	ctx context.Context,
	paperID kernel.UUID,
	stored stock.Counters,
	lastSequence int64,
) (LedgerReport, error) {
	history, err := h.ledger.History(ctx, paperID)
	if err != nil {
		return LedgerReport{}, err
	}
	history = upTo(history, lastSequence)

	report := LedgerReport{PaperID: paperID, Stored: stored, Entries: len(history), AsOfSequence: lastSequence}

	replayed, err := stock.Replay(paperID, history)
	report.Replayed = replayed
	switch {
	case err != nil:
		report.Problem = err.Error()
	case replayed != stored:
		report.Problem = fmt.Sprintf("stored total=%d reserved=%d, replay gives total=%d reserved=%d",
			stored.Total, stored.Reserved, replayed.Total, replayed.Reserved)
	default:
		report.Consistent = true
	}

	return report, nil
}

// upTo keeps the entries with a sequence not after last. History is ordered by sequence.
func upTo(history []*stock.Transaction, last int64) []*stock.Transaction {
	for i, t := range history {
		if t.Sequence() > last {
			return history[:i]
		}
	}
	return history
}
