package itemrepo

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

const entityName = "order item"

// GormOrderItemRepository implements OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderItemRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderItemRepository {
	return &GormOrderItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item.
func (r *GormOrderItemRepository) Add(ctx context.Context, aggregate *item.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column when the stored version still matches the version the
// aggregate was read at, then bumps the aggregate's version.
func (r *GormOrderItemRepository) Update(ctx context.Context, aggregate *item.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).Model(&OrderItemDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError(entityName, aggregate.ID().String())
		}
		return errs.NewStaleStateError(entityName, aggregate.ID().String(), expected)
	}

	aggregate.CommitVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an item by ID.
func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
