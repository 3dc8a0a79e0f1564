// Package postgres provides the GORM-based Unit of Work and the schema of the
// fulfillment service.
//
// A unit of work spans one business transaction over several repositories:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	it, err := uow.OrderItemRepository().Get(ctx, itemID)
//	// ... mutate it
//	if err := uow.OrderItemRepository().Update(ctx, it); err != nil {
//	    return err // *errs.StaleStateError on a lost race
//	}
//	if err := uow.TimelineRepository().Add(ctx, event); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Ledger appends do not go through a unit of work. They run in their own transaction
// holding the paper row lock (see stockrepo.GormLedger).
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Item updates are version-conditional, allocation status changes are compare-and-set
package postgres

import (
	"context"

	"printshop/internal/adapters/out/postgres/allocationrepo"
	"printshop/internal/adapters/out/postgres/itemrepo"
	"printshop/internal/adapters/out/postgres/profilerepo"
	"printshop/internal/adapters/out/postgres/stockrepo"
	"printshop/internal/adapters/out/postgres/timelinerepo"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table of the service for AutoMigrate.
func Models() []any {
	return []any{
		&itemrepo.OrderItemDTO{},
		&timelinerepo.EventDTO{},
		&stockrepo.PaperStockDTO{},
		&stockrepo.TransactionDTO{},
		&allocationrepo.AllocationDTO{},
		&profilerepo.UserProfileDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates the
// repositories wrote during it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction without one.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which the deferred rollbacks of the handlers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return itemrepo.NewGormOrderItemRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaperStockRepository() ports.PaperStockRepository {
	return stockrepo.NewGormPaperStockRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AllocationRepository() ports.AllocationRepository {
	return allocationrepo.NewGormAllocationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TimelineRepository() ports.TimelineRepository {
	return timelinerepo.NewGormTimelineRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work. Repositories
// call it after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the IDs written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

// conn is the transaction when one is active, the plain connection otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
