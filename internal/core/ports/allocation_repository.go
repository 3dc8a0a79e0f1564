package ports

import (
	"context"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"
)

type AllocationRepository interface {
	Add(ctx context.Context, aggregate *allocation.Allocation) error

	// UpdateStatus is a compare-and-set: the row is written only while its stored status
	// equals expected. Otherwise it returns *errs.StaleStateError.
	UpdateStatus(ctx context.Context, aggregate *allocation.Allocation, expected allocation.Status) error

	// DeleteReserved removes an allocation whose reserve entry was never appended. It only
	// deletes while the stored status is still reserved; a missing row is not an error, a
	// settled one returns *errs.StaleStateError.
	DeleteReserved(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error)
}
