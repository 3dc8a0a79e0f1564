package postgres_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/pgtest"
	"printshop/internal/adapters/out/postgres/profilerepo"
	"printshop/internal/adapters/out/postgres/timelinerepo"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) newItem() *item.OrderItem {
	now := time.Now().UTC()
	it, err := item.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "Invitation", 100, now.AddDate(0, 0, 3), true, now)
	suite.Require().NoError(err)
	return it
}

func (suite *UnitOfWorkIntegrationTestSuite) createdEvent(it *item.OrderItem) *timeline.Event {
	actor, err := kernel.NewActor("u-1", "sales", kernel.DepartmentSales, "Sam")
	suite.Require().NoError(err)
	ev, err := timeline.ForItem(it, timeline.ActionCreated, actor, time.Now().UTC())
	suite.Require().NoError(err)
	return ev
}

func (suite *UnitOfWorkIntegrationTestSuite) countEvents() int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Model(&timelinerepo.EventDTO{}).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsItemAndTimeline() {
	ctx := context.Background()
	it := suite.newItem()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderItemRepository().Add(ctx, it))
	suite.Require().NoError(uow.TimelineRepository().Add(ctx, suite.createdEvent(it)))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderItemRepository().Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(it.ProductName(), got.ProductName())
	suite.Equal(int64(1), suite.countEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	it := suite.newItem()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderItemRepository().Add(ctx, it))
	suite.Require().NoError(uow.TimelineRepository().Add(ctx, suite.createdEvent(it)))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderItemRepository().Get(ctx, it.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Zero(suite.countEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackedAggregates() {
	ctx := context.Background()
	it := suite.newItem()

	uow, ok := suite.factory.Create().(*postgres.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderItemRepository().Add(ctx, it))
	suite.Require().NoError(it.TransitionTo(item.StageDesign, item.TransitionOptions{Now: time.Now()}))
	suite.Require().NoError(uow.OrderItemRepository().Update(ctx, it))

	suite.Equal([]kernel.UUID{it.ID(), it.ID()}, uow.TrackedAggregates())
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoryIsolation() {
	ctx := context.Background()
	it := suite.newItem()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.NotSame(uow1, uow2)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow1.OrderItemRepository().Add(ctx, it))

	_, err := uow2.OrderItemRepository().Get(ctx, it.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Uncommitted rows must not leak")

	suite.Require().NoError(uow1.Commit(ctx))
	_, err = uow2.OrderItemRepository().Get(ctx, it.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDepartmentDirectory() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.DB.Create(&profilerepo.UserProfileDTO{
		UserID: "u-7", Name: "Dana", Department: "prepress",
	}).Error)
	suite.Require().NoError(suite.database.DB.Create(&profilerepo.UserProfileDTO{
		UserID: "u-8", Name: "Lee", Department: "warehouse",
	}).Error)
	directory := profilerepo.NewGormDepartmentDirectory(suite.database.DB)

	profile, err := directory.Lookup(ctx, "u-7")
	suite.Require().NoError(err)
	suite.Equal(kernel.DepartmentPrepress, profile.Department)

	_, err = directory.Lookup(ctx, "ghost")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = directory.Lookup(ctx, "u-8")
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
