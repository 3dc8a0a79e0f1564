package commands

import (
	"context"
	"strings"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
)

// DefineProductionSequenceCommandHandler replaces an item's production steps. Before
// production the department owning the item may do it; afterwards only elevated roles,
// and only while no step has started.
type DefineProductionSequenceCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
}

func NewDefineProductionSequenceCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.WorkflowPolicy,
) DefineProductionSequenceCommandHandler {
	return DefineProductionSequenceCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DefineProductionSequenceCommandHandler) Handle(
	ctx context.Context,
	cmd DefineProductionSequenceCommand,
) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "define sequence"); err != nil {
			return nil, err
		}
		if err := it.DefineProductionSequence(cmd.Sequence(), h.policy.IsElevated(cmd.Actor()), now); err != nil {
			return nil, err
		}

		keys := make([]string, 0, len(cmd.Sequence()))
		for _, k := range cmd.Sequence() {
			keys = append(keys, k.String())
		}
		return itemEvent(it, timeline.ActionNoteAdded, cmd.Actor(), now, "production sequence: "+strings.Join(keys, ", "))
	})
}
