package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
)

// CreateOrderItemCommandHandler creates items in the sales stage and records a
// "created" timeline event in the same transaction.
type CreateOrderItemCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
}

func NewCreateOrderItemCommandHandler(uowFactory ItemUoWFactory, policy services.WorkflowPolicy) CreateOrderItemCommandHandler {
	return CreateOrderItemCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h CreateOrderItemCommandHandler) Handle(ctx context.Context, cmd CreateOrderItemCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeDepartment(cmd.Actor(), item.StageSales.Department(), "create item"); err != nil {
		return nil, err
	}

	now := time.Now()
	it, err := item.NewOrderItem(
		kernel.NewUUID(),
		cmd.OrderID(),
		cmd.ProductName(),
		cmd.Quantity(),
		cmd.DeliveryDate(),
		cmd.NeedDesign(),
		now,
	)
	if err != nil {
		return nil, err
	}

	events, err := itemEvent(it, timeline.ActionCreated, cmd.Actor(), now, "")
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

	if err = uow.OrderItemRepository().Add(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.TimelineRepository().Add(ctx, events...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return it, nil
}
