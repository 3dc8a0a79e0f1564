// Package stockrepo persists paper SKUs and their inventory ledger. Counters on
// paper_stock are a materialization of inventory_transactions and are written only by
// the ledger appender under the paper's row lock.
package stockrepo

import (
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

type PaperStockDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"not null"`
	GSM              int       `gorm:"column:gsm;not null"`
	Width            int       `gorm:"not null"`
	Height           int       `gorm:"not null"`
	TotalSheets      int       `gorm:"not null;default:0"`
	ReservedSheets   int       `gorm:"not null;default:0"`
	ReorderThreshold int       `gorm:"not null;default:0"`
	Status           string    `gorm:"type:varchar(16);not null;index"`
	LastSequence     int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (PaperStockDTO) TableName() string {
	return "paper_stock"
}

// TransactionDTO is one ledger row. (paper_id, sequence) is unique, so two appends can
// never claim the same position even if the row lock were bypassed.
type TransactionDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PaperID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_paper_sequence,priority:1;index:idx_ledger_paper_job,priority:1"`
	Sequence  int64      `gorm:"not null;uniqueIndex:idx_ledger_paper_sequence,priority:2"`
	Type      string     `gorm:"type:varchar(16);not null"`
	Quantity  int        `gorm:"not null"`
	JobID     *uuid.UUID `gorm:"type:uuid;index:idx_ledger_paper_job,priority:2"`
	ActorID   string     `gorm:"not null"`
	Notes     string
	CreatedAt time.Time  `gorm:"autoCreateTime:false"`
}

func (TransactionDTO) TableName() string {
	return "inventory_transactions"
}

func paperFromDomain(p *stock.PaperStock) PaperStockDTO {
	s := p.Snapshot()
	return PaperStockDTO{
		ID:               s.ID.Bytes(),
		Name:             s.Name,
		GSM:              s.GSM,
		Width:            s.Width,
		Height:           s.Height,
		TotalSheets:      s.TotalSheets,
		ReservedSheets:   s.ReservedSheets,
		ReorderThreshold: s.ReorderThreshold,
		Status:           string(s.Status),
		LastSequence:     s.LastSequence,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func paperToDomain(dto PaperStockDTO) (*stock.PaperStock, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestorePaperStock(stock.PaperStockSnapshot{
		ID:               id,
		Name:             dto.Name,
		GSM:              dto.GSM,
		Width:            dto.Width,
		Height:           dto.Height,
		TotalSheets:      dto.TotalSheets,
		ReservedSheets:   dto.ReservedSheets,
		ReorderThreshold: dto.ReorderThreshold,
		Status:           stock.Status(dto.Status),
		LastSequence:     dto.LastSequence,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}

func transactionFromDomain(t *stock.Transaction) TransactionDTO {
	var jobID *uuid.UUID
	if id := t.JobID(); id != nil {
		raw := id.Bytes()
		jobID = &raw
	}

	return TransactionDTO{
		ID:        t.ID().Bytes(),
		PaperID:   t.PaperID().Bytes(),
		Sequence:  t.Sequence(),
		Type:      string(t.Type()),
		Quantity:  t.Quantity(),
		JobID:     jobID,
		ActorID:   t.ActorID(),
		Notes:     t.Notes(),
		CreatedAt: t.CreatedAt(),
	}
}

// TransactionToDomain rebuilds a ledger entry; ledger queries reuse it.
func TransactionToDomain(dto TransactionDTO) (*stock.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	paperID, err := kernel.UUIDFromBytes(dto.PaperID[:])
	if err != nil {
		return nil, err
	}

	var jobID *kernel.UUID
	if dto.JobID != nil {
		parsed, jobErr := kernel.UUIDFromBytes((*dto.JobID)[:])
		if jobErr != nil {
			return nil, jobErr
		}
		jobID = &parsed
	}

	return stock.RestoreTransaction(stock.TransactionSnapshot{
		ID:        id,
		PaperID:   paperID,
		Type:      stock.TxType(dto.Type),
		Quantity:  dto.Quantity,
		JobID:     jobID,
		ActorID:   dto.ActorID,
		Notes:     dto.Notes,
		Sequence:  dto.Sequence,
		CreatedAt: dto.CreatedAt,
	})
}
