package stockrepo

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

const paperEntity = "paper"

// GormPaperStockRepository implements PaperStockRepository using GORM.
type GormPaperStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaperStockRepository(db *gorm.DB, tracker aggregateTracker) *GormPaperStockRepository {
	return &GormPaperStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new SKU.
func (r *GormPaperStockRepository) Add(ctx context.Context, aggregate *stock.PaperStock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := paperFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus writes status and updated_at only; counters stay with the ledger.
func (r *GormPaperStockRepository) UpdateStatus(ctx context.Context, aggregate *stock.PaperStock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PaperStockDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     string(aggregate.Status()),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(paperEntity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a SKU by ID.
func (r *GormPaperStockRepository) Get(ctx context.Context, id kernel.UUID) (*stock.PaperStock, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaperStockDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paperEntity, id.String())
		}
		return nil, err
	}

	return paperToDomain(dto)
}
