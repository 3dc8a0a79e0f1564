package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrDiscontinuePaperCommandIsNotConstructed = errors.New(
	"DiscontinuePaperCommand must be created via NewDiscontinuePaperCommand constructor",
)

type DiscontinuePaperCommand struct { //nolint:recvcheck //using for validation
	paperID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewDiscontinuePaperCommand(paperID kernel.UUID, actor kernel.Actor) (DiscontinuePaperCommand, error) {
	if err := errors.Join(paperID.Validate(), actor.Validate()); err != nil {
		return DiscontinuePaperCommand{}, err
	}

	return DiscontinuePaperCommand{
		paperID: paperID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DiscontinuePaperCommand) Validate() error {
	return c.guard.Validate(ErrDiscontinuePaperCommandIsNotConstructed)
}

func (c DiscontinuePaperCommand) PaperID() kernel.UUID { return c.paperID }
func (c DiscontinuePaperCommand) Actor() kernel.Actor  { return c.actor }
