package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
)

// RecordNoteCommandHandler appends notes and milestones. Notes are always allowed;
// milestones need an actor who can act on the item's department. The item itself is
// never written.
type RecordNoteCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
}

func NewRecordNoteCommandHandler(uowFactory ItemUoWFactory, policy services.WorkflowPolicy) RecordNoteCommandHandler {
	return RecordNoteCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h RecordNoteCommandHandler) Handle(ctx context.Context, cmd RecordNoteCommand) (*timeline.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	it, err := uow.OrderItemRepository().Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if cmd.Action().IsMilestone() {
		if err = h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), string(cmd.Action())); err != nil {
			return nil, err
		}
	}

	ev, err := timeline.ForItem(it, cmd.Action(), cmd.Actor(), time.Now())
	if err != nil {
		return nil, err
	}
	ev.WithNotes(cmd.Text()).WithAttachments(cmd.Attachments()...).Public(cmd.IsPublic())

	if err = uow.TimelineRepository().Add(ctx, ev); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ev, nil
}
