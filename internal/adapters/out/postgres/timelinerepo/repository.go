package timelinerepo

import (
	"context"

	"printshop/internal/core/domain/model/timeline"

	"gorm.io/gorm"
)

// GormTimelineRepository implements TimelineRepository using GORM.
type GormTimelineRepository struct {
	db *gorm.DB
}

func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Add appends events in one statement.
func (r *GormTimelineRepository) Add(ctx context.Context, events ...*timeline.Event) error {
	return Insert(ctx, r.db, events...)
}

// Insert writes events through db, which may be a transaction owned by the caller. The
// ledger appender uses it to store reservation events under the paper lock.
func Insert(ctx context.Context, db *gorm.DB, events ...*timeline.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(ev))
	}

	return db.WithContext(ctx).Create(&dtos).Error
}
