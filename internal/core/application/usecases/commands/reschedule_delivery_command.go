package commands

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrRescheduleDeliveryCommandIsNotConstructed = errors.New(
	"RescheduleDeliveryCommand must be created via NewRescheduleDeliveryCommand constructor",
)

type RescheduleDeliveryCommand struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	deliveryDate time.Time
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewRescheduleDeliveryCommand(itemID kernel.UUID, deliveryDate time.Time, actor kernel.Actor) (RescheduleDeliveryCommand, error) {
	var dateErr error
	if deliveryDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("delivery date")
	}
	if err := errors.Join(itemID.Validate(), dateErr, actor.Validate()); err != nil {
		return RescheduleDeliveryCommand{}, err
	}

	return RescheduleDeliveryCommand{
		itemID:       itemID,
		deliveryDate: deliveryDate,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RescheduleDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleDeliveryCommandIsNotConstructed)
}

func (c RescheduleDeliveryCommand) ItemID() kernel.UUID     { return c.itemID }
func (c RescheduleDeliveryCommand) DeliveryDate() time.Time { return c.deliveryDate }
func (c RescheduleDeliveryCommand) Actor() kernel.Actor     { return c.actor }
