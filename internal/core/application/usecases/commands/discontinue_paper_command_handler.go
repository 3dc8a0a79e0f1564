package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/services"
)

type DiscontinuePaperCommandHandler struct {
	uowFactory StockUoWFactory
	policy     services.WorkflowPolicy
}

func NewDiscontinuePaperCommandHandler(uowFactory StockUoWFactory, policy services.WorkflowPolicy) DiscontinuePaperCommandHandler {
	return DiscontinuePaperCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DiscontinuePaperCommandHandler) Handle(ctx context.Context, cmd DiscontinuePaperCommand) (*stock.PaperStock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.AuthorizeInventory(cmd.Actor(), "discontinue paper"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PaperStockRepository()
	paper, err := repo.Get(ctx, cmd.PaperID())
	if err != nil {
		return nil, err
	}

	if err = paper.Discontinue(time.Now()); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, paper); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return paper, nil
}
