package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/metrics"
)

type MarkDispatchedCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
	metrics    *metrics.Metrics
}

func NewMarkDispatchedCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.WorkflowPolicy,
	m *metrics.Metrics,
) MarkDispatchedCommandHandler {
	return MarkDispatchedCommandHandler{uowFactory: uowFactory, policy: policy, metrics: m}
}

// Handle marks the item dispatched; the event is public so customer views see it.
func (h MarkDispatchedCommandHandler) Handle(ctx context.Context, cmd MarkDispatchedCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	it, err := applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "dispatch"); err != nil {
			return nil, err
		}
		if err := it.MarkDispatched(cmd.Complete(), now); err != nil {
			return nil, err
		}
		events, err := itemEvent(it, timeline.ActionDispatched, cmd.Actor(), now, cmd.DispatchInfo())
		if err != nil {
			return nil, err
		}
		events[0].Public(true)
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	if cmd.Complete() {
		h.metrics.ObserveTransition(string(item.StageDispatch), string(item.StageCompleted))
	}
	return it, nil
}
