package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
)

// itemChange mutates a loaded item and returns the events that describe the change.
type itemChange func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error)

// applyItemChange runs one workflow operation: load the item, apply the change, write it
// back conditionally on the version read and append the events, all in one transaction.
// A concurrent writer makes Update fail with StaleState and nothing is committed.
func applyItemChange(
	ctx context.Context,
	uowFactory ItemUoWFactory,
	itemID kernel.UUID,
	change itemChange,
) (*item.OrderItem, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.OrderItemRepository()
	it, err := itemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	events, err := change(it, time.Now())
	if err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
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

func itemEvent(it *item.OrderItem, action timeline.Action, actor kernel.Actor, now time.Time, notes string) ([]*timeline.Event, error) {
	ev, err := timeline.ForItem(it, action, actor, now)
	if err != nil {
		return nil, err
	}
	return []*timeline.Event{ev.WithNotes(notes)}, nil
}
