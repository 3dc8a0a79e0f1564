package commands_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Add(ctx context.Context, it *item.OrderItem) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockOrderItemRepository) Update(ctx context.Context, it *item.OrderItem) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*item.OrderItem)
	return it, args.Error(1)
}

type MockPaperStockRepository struct{ mock.Mock }

func (m *MockPaperStockRepository) Add(ctx context.Context, p *stock.PaperStock) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaperStockRepository) UpdateStatus(ctx context.Context, p *stock.PaperStock) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaperStockRepository) Get(ctx context.Context, id kernel.UUID) (*stock.PaperStock, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*stock.PaperStock)
	return p, args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, a *allocation.Allocation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAllocationRepository) UpdateStatus(ctx context.Context, a *allocation.Allocation, expected allocation.Status) error {
	return m.Called(ctx, a, expected).Error(0)
}

func (m *MockAllocationRepository) DeleteReserved(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*allocation.Allocation)
	return a, args.Error(1)
}

type MockTimelineRepository struct{ mock.Mock }

func (m *MockTimelineRepository) Add(ctx context.Context, events ...*timeline.Event) error {
	return m.Called(ctx, events).Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	return m.Called().Get(0).(ports.OrderItemRepository)
}

func (m *MockUoW) PaperStockRepository() ports.PaperStockRepository {
	return m.Called().Get(0).(ports.PaperStockRepository)
}

func (m *MockUoW) AllocationRepository() ports.AllocationRepository {
	return m.Called().Get(0).(ports.AllocationRepository)
}

func (m *MockUoW) TimelineRepository() ports.TimelineRepository {
	return m.Called().Get(0).(ports.TimelineRepository)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	return m.Called().Get(0).(commands.ItemUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	return m.Called().Get(0).(commands.StockUoW)
}

type MockReservationUoWFactory struct{ mock.Mock }

func (m *MockReservationUoWFactory) Create() commands.ReservationUoW {
	return m.Called().Get(0).(commands.ReservationUoW)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Append(ctx context.Context, paperID kernel.UUID, entry stock.Entry, events ...*timeline.Event) (*stock.Transaction, error) {
	args := m.Called(ctx, paperID, entry, events)
	tx, _ := args.Get(0).(*stock.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedger) History(ctx context.Context, paperID kernel.UUID) ([]*stock.Transaction, error) {
	args := m.Called(ctx, paperID)
	txs, _ := args.Get(0).([]*stock.Transaction)
	return txs, args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) Lookup(ctx context.Context, userID string) (ports.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.Profile), args.Error(1)
}

type MockPriorityCache struct{ mock.Mock }

func (m *MockPriorityCache) Get(ctx context.Context, id kernel.UUID, deliveryDate, today time.Time) (priority.Tier, bool, error) {
	args := m.Called(ctx, id, deliveryDate, today)
	return args.Get(0).(priority.Tier), args.Bool(1), args.Error(2)
}

func (m *MockPriorityCache) Set(ctx context.Context, id kernel.UUID, deliveryDate, today time.Time, tier priority.Tier) error {
	return m.Called(ctx, id, deliveryDate, today, tier).Error(0)
}

func (m *MockPriorityCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Fixtures.

func defaultPolicy() services.WorkflowPolicy {
	return services.NewWorkflowPolicy(services.DefaultRoleCapabilities())
}

func testActor(t *testing.T, role string, dept kernel.Department) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("actor-1", role, dept, "Test Actor")
	require.NoError(t, err)
	return a
}

func salesItem(t *testing.T) *item.OrderItem {
	t.Helper()
	it, err := item.NewOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), "Business cards", 500,
		time.Now().AddDate(0, 0, 10), true, time.Now(),
	)
	require.NoError(t, err)
	return it
}

func dispatchItem(t *testing.T) *item.OrderItem {
	t.Helper()
	now := time.Now()
	it, err := item.RestoreOrderItem(item.Snapshot{
		ID:                 kernel.NewUUID(),
		OrderID:            kernel.NewUUID(),
		ProductName:        "Flyers",
		Quantity:           1000,
		DeliveryDate:       now.AddDate(0, 0, 2),
		Stage:              item.StageDispatch,
		Department:         kernel.DepartmentProduction,
		ReadyForProduction: true,
		Version:            3,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	require.NoError(t, err)
	return it
}

func paperWithStock(t *testing.T, total, reserved int) *stock.PaperStock {
	t.Helper()
	now := time.Now()
	p, err := stock.RestorePaperStock(stock.PaperStockSnapshot{
		ID:               kernel.NewUUID(),
		Name:             "Gloss 170",
		GSM:              170,
		Width:            640,
		Height:           900,
		TotalSheets:      total,
		ReservedSheets:   reserved,
		ReorderThreshold: 100,
		Status:           stock.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	return p
}

// itemUoW wires a MockUoW for one item-workflow transaction.
func itemUoW(t *testing.T) (*MockItemUoWFactory, *MockUoW, *MockOrderItemRepository, *MockTimelineRepository) {
	t.Helper()
	uow := new(MockUoW)
	items := new(MockOrderItemRepository)
	events := new(MockTimelineRepository)
	factory := new(MockItemUoWFactory)
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderItemRepository").Return(items)
	uow.On("TimelineRepository").Return(events)
	return factory, uow, items, events
}

// reservationUoW wires a MockUoW that every reservation transaction shares.
func reservationUoW(t *testing.T) (*MockReservationUoWFactory, *MockUoW, *MockOrderItemRepository, *MockPaperStockRepository, *MockAllocationRepository) {
	t.Helper()
	uow := new(MockUoW)
	items := new(MockOrderItemRepository)
	papers := new(MockPaperStockRepository)
	allocs := new(MockAllocationRepository)
	factory := new(MockReservationUoWFactory)
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderItemRepository").Return(items)
	uow.On("PaperStockRepository").Return(papers)
	uow.On("AllocationRepository").Return(allocs)
	return factory, uow, items, papers, allocs
}

func eventsWithAction(action timeline.Action) any {
	return mock.MatchedBy(func(events []*timeline.Event) bool {
		return len(events) == 1 && events[0].Action() == action
	})
}

func recordedTx(t *testing.T, paper *stock.PaperStock, e stock.Entry, jobReserved int) *stock.Transaction {
	t.Helper()
	tx, err := paper.Record(e, jobReserved, kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return tx
}
