package allocationrepo

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

const entityName = "allocation"

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new allocation.
func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.Allocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus sets the status only while the stored one equals expected. Of two
// concurrent consumers exactly one matches the row.
func (r *GormAllocationRepository) UpdateStatus(
	ctx context.Context,
	aggregate *allocation.Allocation,
	expected allocation.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&AllocationDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), string(expected)).
		Updates(map[string]any{
			"status":     string(aggregate.Status()),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		found, err := r.exists(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if !found {
			return errs.NewObjectNotFoundError(entityName, aggregate.ID().String())
		}
		return errs.NewStaleStateError(entityName, aggregate.ID().String(), string(expected))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// DeleteReserved removes an allocation while it is still reserved. Deleting a missing
// allocation succeeds; one that was consumed or released in the meantime stays and
// *errs.StaleStateError is returned.
func (r *GormAllocationRepository) DeleteReserved(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Bytes(), string(allocation.StatusReserved)).
		Delete(&AllocationDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	found, err := r.exists(ctx, id)
	if err != nil || !found {
		return err
	}
	return errs.NewStaleStateError(entityName, id.String(), string(allocation.StatusReserved))
}

// Get retrieves an allocation by ID.
func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAllocationRepository) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AllocationDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
