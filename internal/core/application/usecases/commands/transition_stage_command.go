package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrTransitionStageCommandIsNotConstructed = errors.New(
	"TransitionStageCommand must be created via NewTransitionStageCommand constructor",
)

// TransitionStageCommand moves an item to another stage. Force asks an elevated actor
// to skip the readiness gates.
type TransitionStageCommand struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	target       item.Stage
	assignedUser string
	notes        string
	force        bool
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewTransitionStageCommand(
	itemID kernel.UUID,
	target string,
	assignedUser string,
	notes string,
	force bool,
	actor kernel.Actor,
) (TransitionStageCommand, error) {
	cmd := TransitionStageCommand{
		assignedUser: strings.TrimSpace(assignedUser),
		notes:        notes,
		force:        force,
		guard:        guard.NewConstructorGuard(),
	}

	stage, stageErr := item.ParseStage(target)
	cmd.target = stage
	if err := errors.Join(itemID.Validate(), stageErr, actor.Validate()); err != nil {
		return TransitionStageCommand{}, err
	}
	cmd.itemID = itemID
	cmd.actor = actor

	return cmd, nil
}

func (c TransitionStageCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStageCommandIsNotConstructed)
}

func (c TransitionStageCommand) ItemID() kernel.UUID  { return c.itemID }
func (c TransitionStageCommand) Target() item.Stage   { return c.target }
func (c TransitionStageCommand) AssignedUser() string { return c.assignedUser }
func (c TransitionStageCommand) Notes() string        { return c.notes }
func (c TransitionStageCommand) Force() bool          { return c.force }
func (c TransitionStageCommand) Actor() kernel.Actor  { return c.actor }
