package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
)

// PaperStockRepository persists paper SKUs. Counters are never written through it;
// they change only through Ledger.Append.
type PaperStockRepository interface {
	Add(ctx context.Context, aggregate *stock.PaperStock) error

	// UpdateStatus persists the SKU's status.
	UpdateStatus(ctx context.Context, aggregate *stock.PaperStock) error

	// Get returns the SKU or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*stock.PaperStock, error)
}
