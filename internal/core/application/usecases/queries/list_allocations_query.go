package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrListAllocationsQueryIsNotConstructed = errors.New(
	"ListAllocationsQuery must be created via NewListAllocationsQuery constructor",
)

// ListAllocationsQuery lists the material allocations of one job (order item), oldest
// first, each with the name of the paper it draws from.
type ListAllocationsQuery struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

func NewListAllocationsQuery(jobID kernel.UUID) (ListAllocationsQuery, error) {
	if err := jobID.Validate(); err != nil {
		return ListAllocationsQuery{}, errs.NewValueIsRequiredErrorWithCause("job id", err)
	}
	return ListAllocationsQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrListAllocationsQueryIsNotConstructed)
}

func (q ListAllocationsQuery) JobID() kernel.UUID { return q.jobID }

type AllocationView struct {
	ID              kernel.UUID
	JobID           kernel.UUID
	PaperID         kernel.UUID
	PaperName       string
	SheetsRequired  int
	SheetsAllocated int
	Status          allocation.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
