package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/services"
)

type RegisterPaperCommandHandler struct {
	uowFactory StockUoWFactory
	policy     services.WorkflowPolicy
}

func NewRegisterPaperCommandHandler(uowFactory StockUoWFactory, policy services.WorkflowPolicy) RegisterPaperCommandHandler {
	return RegisterPaperCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h RegisterPaperCommandHandler) Handle(ctx context.Context, cmd RegisterPaperCommand) (*stock.PaperStock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.AuthorizeInventory(cmd.Actor(), "register paper"); err != nil {
		return nil, err
	}

	paper, err := stock.NewPaperStock(
		kernel.NewUUID(), cmd.Name(), cmd.GSM(), cmd.Width(), cmd.Height(), cmd.ReorderThreshold(), time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaperStockRepository().Add(ctx, paper); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return paper, nil
}
