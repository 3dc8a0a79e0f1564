package commands

import (
	"errors"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrSetSubstageCommandIsNotConstructed = errors.New(
	"SetSubstageCommand must be created via NewSetSubstageCommand constructor",
)

// SetSubstageCommand records progress of one production step.
type SetSubstageCommand struct { //nolint:recvcheck //using for validation
	itemID   kernel.UUID
	substage item.Substage
	status   item.SubstageStatus
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetSubstageCommand(itemID kernel.UUID, substage, status string, actor kernel.Actor) (SetSubstageCommand, error) {
	key, keyErr := item.NewSubstage(substage)
	parsed, statusErr := item.ParseSubstageStatus(status)
	if err := errors.Join(itemID.Validate(), keyErr, statusErr, actor.Validate()); err != nil {
		return SetSubstageCommand{}, err
	}

	return SetSubstageCommand{
		itemID:   itemID,
		substage: key,
		status:   parsed,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetSubstageCommand) Validate() error {
	return c.guard.Validate(ErrSetSubstageCommandIsNotConstructed)
}

func (c SetSubstageCommand) ItemID() kernel.UUID         { return c.itemID }
func (c SetSubstageCommand) Substage() item.Substage     { return c.substage }
func (c SetSubstageCommand) Status() item.SubstageStatus { return c.status }
func (c SetSubstageCommand) Actor() kernel.Actor         { return c.actor }
