package commands

import (
	"errors"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrDefineProductionSequenceCommandIsNotConstructed = errors.New(
	"DefineProductionSequenceCommand must be created via NewDefineProductionSequenceCommand constructor",
)

type DefineProductionSequenceCommand struct { //nolint:recvcheck //using for validation
	itemID   kernel.UUID
	sequence []item.Substage
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewDefineProductionSequenceCommand(itemID kernel.UUID, keys []string, actor kernel.Actor) (DefineProductionSequenceCommand, error) {
	sequence := make([]item.Substage, 0, len(keys))
	result := []error{itemID.Validate(), actor.Validate()}
	if len(keys) == 0 {
		result = append(result, errs.NewValueIsRequiredError("production sequence"))
	}
	for _, k := range keys {
		key, err := item.NewSubstage(k)
		if err != nil {
			result = append(result, err)
			continue
		}
		sequence = append(sequence, key)
	}
	if err := errors.Join(result...); err != nil {
		return DefineProductionSequenceCommand{}, err
	}

	return DefineProductionSequenceCommand{
		itemID:   itemID,
		sequence: sequence,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DefineProductionSequenceCommand) Validate() error {
	return c.guard.Validate(ErrDefineProductionSequenceCommandIsNotConstructed)
}

func (c DefineProductionSequenceCommand) ItemID() kernel.UUID       { return c.itemID }
func (c DefineProductionSequenceCommand) Sequence() []item.Substage { return c.sequence }
func (c DefineProductionSequenceCommand) Actor() kernel.Actor       { return c.actor }
