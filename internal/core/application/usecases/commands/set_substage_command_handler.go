package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
)

// SetSubstageCommandHandler records production progress. Completing the last open step
// makes the item ready; reopening a step clears readiness.
type SetSubstageCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
}

func NewSetSubstageCommandHandler(uowFactory ItemUoWFactory, policy services.WorkflowPolicy) SetSubstageCommandHandler {
	return SetSubstageCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h SetSubstageCommandHandler) Handle(ctx context.Context, cmd SetSubstageCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "set substage"); err != nil {
			return nil, err
		}
		if err := it.SetSubstage(cmd.Substage(), cmd.Status(), now); err != nil {
			return nil, err
		}

		switch cmd.Status() {
		case item.SubstageCompleted:
			return itemEvent(it, timeline.ActionSubstageCompleted, cmd.Actor(), now, "")
		case item.SubstageInProgress:
			return itemEvent(it, timeline.ActionSubstageStarted, cmd.Actor(), now, "")
		default:
			return itemEvent(it, timeline.ActionNoteAdded, cmd.Actor(), now, string(cmd.Substage())+" reset to pending")
		}
	})
}
