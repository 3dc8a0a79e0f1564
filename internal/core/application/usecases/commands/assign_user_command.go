package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrAssignUserCommandIsNotConstructed = errors.New(
	"AssignUserCommand must be created via NewAssignUserCommand constructor",
)

type AssignUserCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	userID string
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewAssignUserCommand(itemID kernel.UUID, userID string, actor kernel.Actor) (AssignUserCommand, error) {
	userID = strings.TrimSpace(userID)
	var userErr error
	if userID == "" {
		userErr = errs.NewValueIsRequiredError("user id")
	}
	if err := errors.Join(itemID.Validate(), userErr, actor.Validate()); err != nil {
		return AssignUserCommand{}, err
	}

	return AssignUserCommand{
		itemID: itemID,
		userID: userID,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AssignUserCommand) Validate() error {
	return c.guard.Validate(ErrAssignUserCommandIsNotConstructed)
}

func (c AssignUserCommand) ItemID() kernel.UUID { return c.itemID }
func (c AssignUserCommand) UserID() string      { return c.userID }
func (c AssignUserCommand) Actor() kernel.Actor { return c.actor }
