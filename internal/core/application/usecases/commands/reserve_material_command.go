package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrReserveMaterialCommandIsNotConstructed = errors.New(
	"ReserveMaterialCommand must be created via NewReserveMaterialCommand constructor",
)

// ReserveMaterialCommand earmarks sheets of one paper for a job (an order item).
type ReserveMaterialCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	paperID kernel.UUID
	sheets  int
	notes   string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewReserveMaterialCommand(
	jobID kernel.UUID,
	paperID kernel.UUID,
	sheets decimal.Decimal,
	notes string,
	actor kernel.Actor,
) (ReserveMaterialCommand, error) {
	n, sheetsErr := kernel.SheetsFromDecimal("sheets", sheets, false)
	if err := errors.Join(jobID.Validate(), paperID.Validate(), sheetsErr, actor.Validate()); err != nil {
		return ReserveMaterialCommand{}, err
	}

	return ReserveMaterialCommand{
		jobID:   jobID,
		paperID: paperID,
		sheets:  n,
		notes:   notes,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReserveMaterialCommand) Validate() error {
	return c.guard.Validate(ErrReserveMaterialCommandIsNotConstructed)
}

func (c ReserveMaterialCommand) JobID() kernel.UUID   { return c.jobID }
func (c ReserveMaterialCommand) PaperID() kernel.UUID { return c.paperID }
func (c ReserveMaterialCommand) Sheets() int          { return c.sheets }
func (c ReserveMaterialCommand) Notes() string        { return c.notes }
func (c ReserveMaterialCommand) Actor() kernel.Actor  { return c.actor }
