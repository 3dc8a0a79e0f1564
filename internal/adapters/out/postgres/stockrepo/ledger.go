package stockrepo

import (
	"context"
	"errors"
	"time"

	"printshop/internal/adapters/out/postgres/timelinerepo"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// jobReservedSQL is what the ledger holds reserved for one job on one paper.
const jobReservedSQL = `
	SELECT COALESCE(SUM(
		CASE type
			WHEN 'reserve' THEN quantity
			WHEN 'release' THEN -quantity
			WHEN 'consume' THEN -quantity
			ELSE 0
		END), 0)
	FROM inventory_transactions
	WHERE paper_id = ? AND job_id = ?
`

// GormLedger implements ports.Ledger. Every append is its own database transaction:
//
//	SELECT ... FROM paper_stock WHERE id = ? FOR UPDATE
//	fold the entry into the locked counters (rejecting it leaves nothing behind)
//	INSERT inventory_transactions (sequence = last_sequence + 1)
//	UPDATE paper_stock counters
//	INSERT timeline_events
//
// Appends to one paper are serialized by the row lock; different papers proceed in
// parallel.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Append(
	ctx context.Context,
	paperID kernel.UUID,
	entry stock.Entry,
	events ...*timeline.Event,
) (*stock.Transaction, error) {
	if err := paperID.Validate(); err != nil {
		return nil, err
	}

	var appended *stock.Transaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto PaperStockDTO
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", paperID.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError(paperEntity, paperID.String())
			}
			return err
		}

		paper, err := paperToDomain(dto)
		if err != nil {
			return err
		}

		var jobReserved int
		if entry.JobID != nil {
			if err = tx.Raw(jobReservedSQL, paperID.Bytes(), entry.JobID.Bytes()).Row().Scan(&jobReserved); err != nil {
				return err
			}
		}

		recorded, err := paper.Record(entry, jobReserved, kernel.NewUUID(), time.Now())
		if err != nil {
			return err
		}

		row := transactionFromDomain(recorded)
		if err = tx.Create(&row).Error; err != nil {
			return err
		}

		if err = tx.Model(&PaperStockDTO{}).
			Where("id = ?", paperID.Bytes()).
			Updates(map[string]any{
				"total_sheets":    paper.TotalSheets(),
				"reserved_sheets": paper.ReservedSheets(),
				"last_sequence":   paper.LastSequence(),
				"updated_at":      paper.UpdatedAt(),
			}).Error; err != nil {
			return err
		}

		if err = timelinerepo.Insert(ctx, tx, events...); err != nil {
			return err
		}

		appended = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return appended, nil
}

// History returns every entry of the paper in sequence order.
func (l *GormLedger) History(ctx context.Context, paperID kernel.UUID) ([]*stock.Transaction, error) {
	if err := paperID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransactionDTO
	if err := l.db.WithContext(ctx).
		Where("paper_id = ?", paperID.Bytes()).
		Order("sequence").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	txs := make([]*stock.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		t, err := TransactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}

	return txs, nil
}
