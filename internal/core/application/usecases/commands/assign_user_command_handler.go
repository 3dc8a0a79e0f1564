package commands

import (
	"context"
	"errors"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// AssignUserCommandHandler assigns a member of the item's current department. The
// membership comes from the profile directory; an unknown user fails closed.
type AssignUserCommandHandler struct {
	uowFactory ItemUoWFactory
	policy     services.WorkflowPolicy
	directory  ports.DepartmentDirectory
}

func NewAssignUserCommandHandler(
	uowFactory ItemUoWFactory,
	policy services.WorkflowPolicy,
	directory ports.DepartmentDirectory,
) AssignUserCommandHandler {
	return AssignUserCommandHandler{uowFactory: uowFactory, policy: policy, directory: directory}
}

func (h AssignUserCommandHandler) Handle(ctx context.Context, cmd AssignUserCommand) (*item.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile, lookupErr := h.directory.Lookup(ctx, cmd.UserID())
	if lookupErr != nil && !errors.Is(lookupErr, errs.ErrObjectNotFound) {
		return nil, lookupErr
	}

	return applyItemChange(ctx, h.uowFactory, cmd.ItemID(), func(it *item.OrderItem, now time.Time) ([]*timeline.Event, error) {
		if err := h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "assign"); err != nil {
			return nil, err
		}
		if lookupErr != nil {
			return nil, errs.NewUserNotInDepartmentErrorWithCause(cmd.UserID(), string(it.Department()), lookupErr)
		}
		if err := it.AssignUser(cmd.UserID(), profile.Department, now); err != nil {
			return nil, err
		}
		return itemEvent(it, timeline.ActionAssigned, cmd.Actor(), now, "assigned to "+cmd.UserID())
	})
}
