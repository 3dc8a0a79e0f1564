package commands

import (
	"context"

	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/metrics"
)

// StockMovementCommandHandler appends receipts, issues and adjustments. These carry no
// order, so the ledger entry is their only audit record.
type StockMovementCommandHandler struct {
	ledger  ports.Ledger
	policy  services.WorkflowPolicy
	metrics *metrics.Metrics
}

func NewStockMovementCommandHandler(ledger ports.Ledger, policy services.WorkflowPolicy, m *metrics.Metrics) StockMovementCommandHandler {
	return StockMovementCommandHandler{ledger: ledger, policy: policy, metrics: m}
}

func (h StockMovementCommandHandler) Handle(ctx context.Context, cmd StockMovementCommand) (*stock.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.AuthorizeInventory(cmd.Actor(), string(cmd.Type())); err != nil {
		return nil, err
	}

	tx, err := h.ledger.Append(ctx, cmd.PaperID(), stock.Entry{
		Type:     cmd.Type(),
		Quantity: cmd.Quantity(),
		ActorID:  cmd.Actor().ID(),
		Notes:    cmd.Notes(),
	})
	if err != nil {
		h.metrics.ObserveLedgerRejection(string(cmd.Type()), err)
		return nil, err
	}

	h.metrics.ObserveLedgerAppend(string(cmd.Type()))
	return tx, nil
}
