package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscontinuePaperCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	paper := paperWithStock(t, 100, 0)
	uow := new(MockUoW)
	papers := new(MockPaperStockRepository)
	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaperStockRepository").Return(papers).Once()
	papers.On("Get", ctx, paper.ID()).Return(paper, nil).Once()
	papers.On("UpdateStatus", ctx, paper).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewDiscontinuePaperCommand(paper.ID(), testActor(t, "manager", ""))
	require.NoError(t, err)

	got, err := commands.NewDiscontinuePaperCommandHandler(factory, defaultPolicy()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsDiscontinued())
	papers.AssertExpectations(t)
}
