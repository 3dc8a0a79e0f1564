package itemrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/itemrepo"
	"printshop/internal/adapters/out/postgres/pgtest"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *itemrepo.GormOrderItemRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderItemRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = itemrepo.NewGormOrderItemRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderItemRepositoryIntegrationTestSuite) newItem(needDesign bool) *item.OrderItem {
	now := time.Now().UTC().Truncate(time.Microsecond)
	it, err := item.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "Wedding card", 250, now.AddDate(0, 0, 5), needDesign, now)
	suite.Require().NoError(err)
	return it
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	it := suite.newItem(true)

	suite.Require().NoError(suite.repository.Add(ctx, it))

	got, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(it.OrderID(), got.OrderID())
	suite.Equal(item.StageSales, got.Stage())
	suite.Equal(kernel.DepartmentSales, got.Department())
	suite.Equal(1, got.Version())
	suite.True(got.NeedDesign())
	suite.Equal(it.DeliveryDate().Format(time.DateOnly), got.DeliveryDate().Format(time.DateOnly))
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdate_PersistsProductionState() {
	ctx := context.Background()
	it := suite.newItem(false)
	suite.Require().NoError(suite.repository.Add(ctx, it))

	now := time.Now()
	suite.Require().NoError(it.DefineProductionSequence([]item.Substage{item.SubstageFoiling, item.SubstagePrinting}, false, now))
	suite.Require().NoError(it.TransitionTo(item.StageProduction, item.TransitionOptions{Force: true, Now: now}))
	suite.Require().NoError(it.SetSubstage(item.SubstageFoiling, item.SubstageCompleted, now))

	suite.Require().NoError(suite.repository.Update(ctx, it))
	suite.Equal(2, it.Version())

	got, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.StageProduction, got.Stage())
	suite.Equal([]item.Substage{item.SubstageFoiling, item.SubstagePrinting}, got.ProductionSequence())
	suite.Equal(item.SubstageCompleted, got.SubstageProgress(item.SubstageFoiling))
	suite.Equal(2, got.Version())
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	it := suite.newItem(false)
	suite.Require().NoError(suite.repository.Add(ctx, it))

	first, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransitionTo(item.StageDesign, item.TransitionOptions{Now: time.Now()}))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.TransitionTo(item.StagePrepress, item.TransitionOptions{Now: time.Now()}))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrStaleState)

	got, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.StageDesign, got.Stage())
}

// Two writers race from sales, one to design and one to prepress. Exactly one wins.
func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdate_ConcurrentTransitions() {
	ctx := context.Background()
	it := suite.newItem(false)
	suite.Require().NoError(suite.repository.Add(ctx, it))

	targets := []item.Stage{item.StageDesign, item.StagePrepress}
	results := make([]error, len(targets))

	var ready, done sync.WaitGroup
	start := make(chan struct{})
	for i, target := range targets {
		loaded, err := suite.repository.Get(ctx, it.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.TransitionTo(target, item.TransitionOptions{Now: time.Now()}))

		ready.Add(1)
		done.Add(1)
		go func(i int, loaded *item.OrderItem) {
			defer done.Done()
			ready.Done()
			<-start
			results[i] = suite.repository.Update(ctx, loaded)
		}(i, loaded)
	}
	ready.Wait()
	close(start)
	done.Wait()

	var won, stale int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, errs.ErrStaleState):
			stale++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, won)
	suite.Equal(1, stale)

	got, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(2, got.Version())
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	it := suite.newItem(false)

	err := suite.repository.Update(context.Background(), it)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestGet_NotFound() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderItemRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderItemRepositoryIntegrationTestSuite))
}
