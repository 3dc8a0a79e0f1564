package commands_test

import (
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderItemCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	factory, uow, items, events := itemUoW(t)
	items.On("Add", ctx, mock.AnythingOfType("*item.OrderItem")).Return(nil).Once()
	events.On("Add", ctx, eventsWithAction(timeline.ActionCreated)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewCreateOrderItemCommand(
		kernel.NewUUID(), "Posters", 50, time.Now().AddDate(0, 0, 5), false,
		testActor(t, "sales", ""),
	)
	require.NoError(t, err)

	// Act
	it, err := commands.NewCreateOrderItemCommandHandler(factory, defaultPolicy()).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, item.StageSales, it.Stage())
	assert.Equal(t, kernel.DepartmentSales, it.Department())
	items.AssertExpectations(t)
	events.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderItemCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	factory := new(MockItemUoWFactory)
	cmd, err := commands.NewCreateOrderItemCommand(
		kernel.NewUUID(), "Posters", 50, time.Now(), false, testActor(t, "designer", ""),
	)
	require.NoError(t, err)

	_, err = commands.NewCreateOrderItemCommandHandler(factory, defaultPolicy()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderItemCommandHandler_Handle_InvalidCommand(t *testing.T) {
	var cmd commands.CreateOrderItemCommand

	_, err := commands.NewCreateOrderItemCommandHandler(new(MockItemUoWFactory), defaultPolicy()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderItemCommandIsNotConstructed)
}
