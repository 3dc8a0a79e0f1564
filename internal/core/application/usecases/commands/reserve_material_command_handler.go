package commands

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// ReserveMaterialCommandHandler stores a reserved allocation and then appends the
// matching reserve entry under the paper lock. If the append is rejected the
// allocation is deleted again.
type ReserveMaterialCommandHandler struct {
	uowFactory  ReservationUoWFactory
	ledger      ports.Ledger
	policy      services.WorkflowPolicy
	metrics     *metrics.Metrics
	compensator compensator
}

func NewReserveMaterialCommandHandler(
	uowFactory ReservationUoWFactory,
	ledger ports.Ledger,
	policy services.WorkflowPolicy,
	m *metrics.Metrics,
	logger *logrus.Logger,
) ReserveMaterialCommandHandler {
	return ReserveMaterialCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		policy:     policy,
		metrics:    m,
		compensator: compensator{
			uowFactory: uowFactory,
			logger:     logger.WithField("component", "reserve_material"),
			metrics:    m,
		},
	}
}

func (h ReserveMaterialCommandHandler) Handle(ctx context.Context, cmd ReserveMaterialCommand) (MaterialResult, error) {
	if err := cmd.Validate(); err != nil {
		return MaterialResult{}, err
	}

	now := time.Now()
	it, paper, alloc, err := h.storeAllocation(ctx, cmd, now)
	if err != nil {
		return MaterialResult{}, err
	}

	ev, err := timeline.ForItem(it, timeline.ActionNoteAdded, cmd.Actor(), now)
	if err != nil {
		return MaterialResult{}, h.undo(ctx, alloc.ID(), err)
	}
	ev.WithNotes(joinNotes(fmt.Sprintf("reserved %d sheets of %s", cmd.Sheets(), paper.Name()), cmd.Notes()))

	jobID := cmd.JobID()
	tx, err := h.ledger.Append(ctx, cmd.PaperID(), stock.Entry{
		Type:     stock.TxReserve,
		Quantity: cmd.Sheets(),
		JobID:    &jobID,
		ActorID:  cmd.Actor().ID(),
		Notes:    cmd.Notes(),
	}, ev)
	if err != nil {
		h.metrics.ObserveLedgerRejection(string(stock.TxReserve), err)
		return MaterialResult{}, h.undo(ctx, alloc.ID(), err)
	}

	h.metrics.ObserveLedgerAppend(string(stock.TxReserve))
	return MaterialResult{Allocation: alloc, Transaction: tx}, nil
}

func (h ReserveMaterialCommandHandler) storeAllocation(
	ctx context.Context,
	cmd ReserveMaterialCommand,
	now time.Time,
) (*item.OrderItem, *stock.PaperStock, *allocation.Allocation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	it, err := uow.OrderItemRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return nil, nil, nil, err
	}
	if err = h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), "reserve material"); err != nil {
		return nil, nil, nil, err
	}

	paper, err := uow.PaperStockRepository().Get(ctx, cmd.PaperID())
	if err != nil {
		return nil, nil, nil, err
	}

	alloc, err := allocation.NewAllocation(kernel.NewUUID(), cmd.JobID(), cmd.PaperID(), cmd.Sheets(), now)
	if err != nil {
		return nil, nil, nil, err
	}

	if err = uow.AllocationRepository().Add(ctx, alloc); err != nil {
		return nil, nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, nil, err
	}

	return it, paper, alloc, nil
}

// undo deletes the allocation unless it was settled while the append was in flight.
func (h ReserveMaterialCommandHandler) undo(ctx context.Context, allocationID kernel.UUID, cause error) error {
	return h.compensator.compensate(ctx, stock.TxReserve, allocationID, cause,
		func(ctx context.Context, uow ReservationUoW) error {
			return uow.AllocationRepository().DeleteReserved(ctx, allocationID)
		})
}

func joinNotes(summary, notes string) string {
	if notes == "" {
		return summary
	}
	return summary + ": " + notes
}
