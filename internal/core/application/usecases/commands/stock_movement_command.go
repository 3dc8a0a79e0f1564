package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrStockMovementCommandIsNotConstructed = errors.New(
	"StockMovementCommand must be created via NewReceiveStockCommand, NewIssueStockCommand or NewAdjustStockCommand",
)

// StockMovementCommand is a job-less ledger entry: a receipt, an issue or a correction.
// Quantities arrive as decimals so fractional sheets are rejected instead of truncated.
type StockMovementCommand struct { //nolint:recvcheck //using for validation
	paperID  kernel.UUID
	txType   stock.TxType
	quantity int
	notes    string
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewReceiveStockCommand appends an "in" entry.
func NewReceiveStockCommand(paperID kernel.UUID, sheets decimal.Decimal, notes string, actor kernel.Actor) (StockMovementCommand, error) {
	return newStockMovementCommand(paperID, stock.TxIn, sheets, notes, actor)
}

// NewIssueStockCommand appends an "out" entry, bounded by available sheets.
func NewIssueStockCommand(paperID kernel.UUID, sheets decimal.Decimal, notes string, actor kernel.Actor) (StockMovementCommand, error) {
	return newStockMovementCommand(paperID, stock.TxOut, sheets, notes, actor)
}

// NewAdjustStockCommand appends a signed correction to the total.
func NewAdjustStockCommand(paperID kernel.UUID, delta decimal.Decimal, notes string, actor kernel.Actor) (StockMovementCommand, error) {
	return newStockMovementCommand(paperID, stock.TxAdjust, delta, notes, actor)
}

func newStockMovementCommand(
	paperID kernel.UUID,
	txType stock.TxType,
	quantity decimal.Decimal,
	notes string,
	actor kernel.Actor,
) (StockMovementCommand, error) {
	sheets, qtyErr := kernel.SheetsFromDecimal("quantity", quantity, txType.IsSigned())
	if err := errors.Join(paperID.Validate(), qtyErr, actor.Validate()); err != nil {
		return StockMovementCommand{}, err
	}

	return StockMovementCommand{
		paperID:  paperID,
		txType:   txType,
		quantity: sheets,
		notes:    notes,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c StockMovementCommand) Validate() error {
	return c.guard.Validate(ErrStockMovementCommandIsNotConstructed)
}

func (c StockMovementCommand) PaperID() kernel.UUID { return c.paperID }
func (c StockMovementCommand) Type() stock.TxType   { return c.txType }
func (c StockMovementCommand) Quantity() int        { return c.quantity }
func (c StockMovementCommand) Notes() string        { return c.notes }
func (c StockMovementCommand) Actor() kernel.Actor  { return c.actor }
