package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrRegisterPaperCommandIsNotConstructed = errors.New(
	"RegisterPaperCommand must be created via NewRegisterPaperCommand constructor",
)

// RegisterPaperCommand adds a paper SKU with empty counters. Dimension checks are left
// to the aggregate.
type RegisterPaperCommand struct { //nolint:recvcheck //using for validation
	name             string
	gsm              int
	width            int
	height           int
	reorderThreshold int
	actor            kernel.Actor

	guard guard.ConstructorGuard
}

func NewRegisterPaperCommand(name string, gsm, width, height, reorderThreshold int, actor kernel.Actor) (RegisterPaperCommand, error) {
	if err := actor.Validate(); err != nil {
		return RegisterPaperCommand{}, err
	}

	return RegisterPaperCommand{
		name:             name,
		gsm:              gsm,
		width:            width,
		height:           height,
		reorderThreshold: reorderThreshold,
		actor:            actor,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPaperCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPaperCommandIsNotConstructed)
}

func (c RegisterPaperCommand) Name() string          { return c.name }
func (c RegisterPaperCommand) GSM() int              { return c.gsm }
func (c RegisterPaperCommand) Width() int            { return c.width }
func (c RegisterPaperCommand) Height() int           { return c.height }
func (c RegisterPaperCommand) ReorderThreshold() int { return c.reorderThreshold }
func (c RegisterPaperCommand) Actor() kernel.Actor   { return c.actor }
