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
	ErrGetPaperStockQueryIsNotConstructed = errors.New(
		"GetPaperStockQuery must be created via NewGetPaperStockQuery constructor",
	)
	ErrListPaperStockQueryIsNotConstructed = errors.New(
		"ListPaperStockQuery must be created via NewListPaperStockQuery constructor",
	)
)

// PaperStockView is the read model of a paper SKU. AvailableSheets is derived as
// total - reserved and never stored.
type PaperStockView struct {
	ID               kernel.UUID
	Name             string
	GSM              int
	Width            int
	Height           int
	TotalSheets      int
	ReservedSheets   int
	AvailableSheets  int
	ReorderThreshold int
	BelowThreshold   bool
	Status           stock.Status
	LastSequence     int64
	UpdatedAt        time.Time
}

type GetPaperStockQuery struct {
	paperID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetPaperStockQuery(paperID kernel.UUID) (GetPaperStockQuery, error) {
	if err := paperID.Validate(); err != nil {
		return GetPaperStockQuery{}, errs.NewValueIsRequiredErrorWithCause("paper id", err)
	}
	return GetPaperStockQuery{paperID: paperID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPaperStockQuery) Validate() error {
	return q.guard.Validate(ErrGetPaperStockQueryIsNotConstructed)
}

func (q GetPaperStockQuery) PaperID() kernel.UUID { return q.paperID }

// ListPaperStockQuery lists SKUs by name. lowStockOnly keeps the active SKUs whose
// available sheets fell below their reorder threshold.
//
// Example:
//
//	query := NewListPaperStockQuery(true)
//	reorder, err := handler.Handle(ctx, query)
//	for _, p := range reorder {
//	    fmt.Printf("%s: %d available, threshold %d\n", p.Name, p.AvailableSheets, p.ReorderThreshold)
//	}
type ListPaperStockQuery struct {
	lowStockOnly bool
	guard        guard.ConstructorGuard
}

func NewListPaperStockQuery(lowStockOnly bool) ListPaperStockQuery {
	return ListPaperStockQuery{lowStockOnly: lowStockOnly, guard: guard.NewConstructorGuard()}
}

func (q ListPaperStockQuery) Validate() error {
	return q.guard.Validate(ErrListPaperStockQueryIsNotConstructed)
}

func (q ListPaperStockQuery) LowStockOnly() bool { return q.lowStockOnly }
