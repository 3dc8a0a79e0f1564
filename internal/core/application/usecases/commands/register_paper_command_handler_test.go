package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterPaperCommandHandler_Handle(t *testing.T) {
	t.Run("storekeeper registers a sku with empty counters", func(t *testing.T) {
		ctx := t.Context()
		uow := new(MockUoW)
		papers := new(MockPaperStockRepository)
		factory := new(MockStockUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("PaperStockRepository").Return(papers).Once()
		papers.On("Add", ctx, mock.AnythingOfType("*stock.PaperStock")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewRegisterPaperCommand("Matt 300", 300, 700, 1000, 200, testActor(t, "storekeeper", ""))
		require.NoError(t, err)

		paper, err := commands.NewRegisterPaperCommandHandler(factory, defaultPolicy()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 0, paper.TotalSheets())
		assert.Equal(t, 0, paper.ReservedSheets())
		assert.Equal(t, stock.StatusActive, paper.Status())
		uow.AssertExpectations(t)
		papers.AssertExpectations(t)
	})

	t.Run("designers cannot administer stock", func(t *testing.T) {
		factory := new(MockStockUoWFactory)
		cmd, err := commands.NewRegisterPaperCommand("Matt 300", 300, 700, 1000, 200, testActor(t, "designer", ""))
		require.NoError(t, err)

		_, err = commands.NewRegisterPaperCommandHandler(factory, defaultPolicy()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		factory.AssertNotCalled(t, "Create")
	})
}
