package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/guard"
)

var ErrSettleMaterialCommandIsNotConstructed = errors.New(
	"SettleMaterialCommand must be created via NewConsumeMaterialCommand or NewReleaseMaterialCommand",
)

// SettleMaterialCommand ends a reservation, either by consuming its sheets or by
// returning them to available stock.
type SettleMaterialCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	txType       stock.TxType
	notes        string
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewConsumeMaterialCommand(allocationID kernel.UUID, notes string, actor kernel.Actor) (SettleMaterialCommand, error) {
	return newSettleMaterialCommand(allocationID, stock.TxConsume, notes, actor)
}

func NewReleaseMaterialCommand(allocationID kernel.UUID, notes string, actor kernel.Actor) (SettleMaterialCommand, error) {
	return newSettleMaterialCommand(allocationID, stock.TxRelease, notes, actor)
}

func newSettleMaterialCommand(allocationID kernel.UUID, txType stock.TxType, notes string, actor kernel.Actor) (SettleMaterialCommand, error) {
	if err := errors.Join(allocationID.Validate(), actor.Validate()); err != nil {
		return SettleMaterialCommand{}, err
	}

	return SettleMaterialCommand{
		allocationID: allocationID,
		txType:       txType,
		notes:        notes,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SettleMaterialCommand) Validate() error {
	return c.guard.Validate(ErrSettleMaterialCommandIsNotConstructed)
}

func (c SettleMaterialCommand) AllocationID() kernel.UUID { return c.allocationID }
func (c SettleMaterialCommand) Type() stock.TxType        { return c.txType }
func (c SettleMaterialCommand) Notes() string             { return c.notes }
func (c SettleMaterialCommand) Actor() kernel.Actor       { return c.actor }
