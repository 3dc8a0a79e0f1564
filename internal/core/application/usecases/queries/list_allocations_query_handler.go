package queries

import (
	"context"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAllocationsQueryHandler struct {
	db *gorm.DB
}

func NewListAllocationsQueryHandler(db *gorm.DB) ListAllocationsQueryHandler {
	return ListAllocationsQueryHandler{db: db}
}

func (h ListAllocationsQueryHandler) Handle(ctx context.Context, query ListAllocationsQuery) ([]AllocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	allocations := make([]AllocationView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.job_id,
			a.paper_id,
			COALESCE(p.name, ''),
			a.sheets_required,
			a.sheets_allocated,
			a.status,
			a.created_at,
			a.updated_at
		FROM job_material_allocations a
		LEFT JOIN paper_stock p ON p.id = a.paper_id
		WHERE a.job_id = ?
		ORDER BY a.created_at, a.id
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v                  AllocationView
			id, jobID, paperID uuid.UUID
			status             string
		)

		err = rows.Scan(
			&id,
			&jobID,
			&paperID,
			&v.PaperName,
			&v.SheetsRequired,
			&v.SheetsAllocated,
			&status,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.JobID, err = kernel.UUIDFromBytes(jobID[:]); err != nil {
			return nil, err
		}
		if v.PaperID, err = kernel.UUIDFromBytes(paperID[:]); err != nil {
			return nil, err
		}
		v.Status = allocation.Status(status)

		allocations = append(allocations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}
