package commands

import (
	"context"
	"errors"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/metrics"
)

// TransitionStageCommandHandler applies stage transitions under optimistic concurrency.
// Two concurrent transitions of one item both read the same version; the second
// writer fails with StaleState and has to re-read.
//
// Example:
//
//	it, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrStaleState):
//	    // re-read and retry
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // target not reachable
//	}
type TransitionStageCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
	directory  ports.DepartmentDirectory
	metrics    *metrics.Metrics
}

func NewTransitionStageCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.WorkflowPolicy,
	directory ports.DepartmentDirectory,
	m *metrics.Metrics,
) TransitionStageCommandHandler {
	return TransitionStageCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		directory:  directory,
		metrics:    m,
	}
}

func (h TransitionStageCommandHandler) Handle(ctx context.Context, cmd TransitionStageCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// The assignee must belong to the target department; resolved before the
	// transaction so no row is held during the lookup.
	if cmd.AssignedUser() != "" {
		if err := checkMembership(ctx, h.directory, cmd.AssignedUser(), cmd.Target().Department()); err != nil {
			return nil, err
		}
	}

	var from item.Stage
	it, err := applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		from = it.Stage()
		if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "transition"); err != nil {
			return nil, err
		}
		if cmd.Force() {
			if err := h.policy.AuthorizeForce(cmd.Actor(), it.Department(), "transition"); err != nil {
				return nil, err
			}
		}

		if err := it.TransitionTo(cmd.Target(), item.TransitionOptions{
			AssignedUser: cmd.AssignedUser(),
			Force:        cmd.Force(),
			Now:          now,
		}); err != nil {
			return nil, err
		}

		action := timeline.ActionAssigned
		if cmd.Target() == item.StageProduction {
			action = timeline.ActionSentToProduction
		}
		return itemEvent(it, action, cmd.Actor(), now, cmd.Notes())
	})
	if err != nil {
		return nil, err
	}

	h.metrics.ObserveTransition(string(from), string(it.Stage()))
	return it, nil
}

// checkMembership fails closed: an unknown profile is reported as not in the department.
func checkMembership(ctx context.Context, directory ports.DepartmentDirectory, userID string, department kernel.Department) error {
	profile, err := directory.Lookup(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewUserNotInDepartmentErrorWithCause(userID, string(department), err)
	}
	if err != nil {
		return err
	}
	if profile.Department != department {
		return errs.NewUserNotInDepartmentError(userID, string(department), string(profile.Department))
	}
	return nil
}
