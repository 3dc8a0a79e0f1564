package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrMarkDispatchedCommandIsNotConstructed = errors.New(
	"MarkDispatchedCommand must be created via NewMarkDispatchedCommand constructor",
)

// MarkDispatchedCommand records the shipment of an item. DispatchInfo is free text
// such as the carrier and tracking number; Complete also closes the item.
type MarkDispatchedCommand struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	dispatchInfo string
	complete     bool
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewMarkDispatchedCommand(itemID kernel.UUID, dispatchInfo string, complete bool, actor kernel.Actor) (MarkDispatchedCommand, error) {
	if err := errors.Join(itemID.Validate(), actor.Validate()); err != nil {
		return MarkDispatchedCommand{}, err
	}

	return MarkDispatchedCommand{
		itemID:       itemID,
		dispatchInfo: dispatchInfo,
		complete:     complete,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c MarkDispatchedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDispatchedCommandIsNotConstructed)
}

func (c MarkDispatchedCommand) ItemID() kernel.UUID  { return c.itemID }
func (c MarkDispatchedCommand) DispatchInfo() string { return c.dispatchInfo }
func (c MarkDispatchedCommand) Complete() bool       { return c.complete }
func (c MarkDispatchedCommand) Actor() kernel.Actor  { return c.actor }
