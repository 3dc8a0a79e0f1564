package commands

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// RescheduleDeliveryCommandHandler is the only writer of delivery dates. Sales or the
// department holding the item may reschedule. After commit the cached priority of the
// item is dropped.
type RescheduleDeliveryCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
	cache      ports.PriorityCache
	logger     *logrus.Entry
}

func NewRescheduleDeliveryCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.WorkflowPolicy,
	cache ports.PriorityCache,
	logger *logrus.Logger,
) RescheduleDeliveryCommandHandler {
	return RescheduleDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
		logger:     logger.WithField("component", "reschedule_delivery"),
	}
}

func (h RescheduleDeliveryCommandHandler) Handle(ctx context.Context, cmd RescheduleDeliveryCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	it, err := applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		if !h.policy.CanActOn(cmd.Actor(), kernel.DepartmentSales) {
			if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "reschedule"); err != nil {
				return nil, err
			}
		}
		previous := it.DeliveryDate()
		if err := it.Reschedule(cmd.DeliveryDate(), now); err != nil {
			return nil, err
		}
		notes := fmt.Sprintf("delivery date changed from %s to %s",
			previous.Format(time.DateOnly), it.DeliveryDate().Format(time.DateOnly))
		return itemEvent(it, timeline.ActionNoteAdded, cmd.Actor(), now, notes)
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		// A failed invalidation cannot serve a wrong tier: cached entries are keyed to the
		// old delivery date and miss on the next read.
		if cacheErr := h.cache.Invalidate(ctx, it.ID()); cacheErr != nil {
			h.logger.WithError(cacheErr).WithField("item_id", it.ID().String()).Warn("priority cache invalidation failed")
		}
	}

	return it, nil
}
