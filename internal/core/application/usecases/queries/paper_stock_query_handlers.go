package queries

import (
	"context"
	"database/sql"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const paperStockColumns = `
	id,
	name,
	gsm,
	width,
	height,
	total_sheets,
	reserved_sheets,
	total_sheets - reserved_sheets AS available_sheets,
	reorder_threshold,
	status,
	last_sequence,
	updated_at`

type GetPaperStockQueryHandler struct {
	db *gorm.DB
}

func NewGetPaperStockQueryHandler(db *gorm.DB) GetPaperStockQueryHandler {
	return GetPaperStockQueryHandler{db: db}
}

func (h GetPaperStockQueryHandler) Handle(ctx context.Context, query GetPaperStockQuery) (PaperStockView, error) {
	if err := query.Validate(); err != nil {
		return PaperStockView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+paperStockColumns+`
		FROM paper_stock
		WHERE id = ?
	`, query.PaperID().Bytes()).Rows()
	if err != nil {
		return PaperStockView{}, err
	}
	defer rows.Close()

	papers, err := scanPaperStock(rows)
	if err != nil {
		return PaperStockView{}, err
	}
	if len(papers) == 0 {
		return PaperStockView{}, errs.NewObjectNotFoundError("paper", query.PaperID().String())
	}

	return papers[0], nil
}

type ListPaperStockQueryHandler struct {
	db *gorm.DB
}

func NewListPaperStockQueryHandler(db *gorm.DB) ListPaperStockQueryHandler {
	return ListPaperStockQueryHandler{db: db}
}

func (h ListPaperStockQueryHandler) Handle(ctx context.Context, query ListPaperStockQuery) ([]PaperStockView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+paperStockColumns+`
		FROM paper_stock
		WHERE NOT ? OR (status = ? AND total_sheets - reserved_sheets < reorder_threshold)
		ORDER BY name, id
	`, query.LowStockOnly(), string(stock.StatusActive)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPaperStock(rows)
}

func scanPaperStock(rows *sql.Rows) ([]PaperStockView, error) {
	papers := make([]PaperStockView, 0)
	for rows.Next() {
		var (
			v      PaperStockView
			id     uuid.UUID
			status string
		)

		if err := rows.Scan(
			&id,
			&v.Name,
			&v.GSM,
			&v.Width,
			&v.Height,
			&v.TotalSheets,
			&v.ReservedSheets,
			&v.AvailableSheets,
			&v.ReorderThreshold,
			&status,
			&v.LastSequence,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}

		paperID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		v.ID = paperID
		v.Status = stock.Status(status)
		v.BelowThreshold = v.AvailableSheets < v.ReorderThreshold

		papers = append(papers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return papers, nil
}
