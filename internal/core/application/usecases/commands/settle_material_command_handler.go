package commands

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// SettleMaterialCommandHandler consumes or releases an allocation. The status change is
// stored first with a compare-and-set on "reserved"; the ledger entry follows. A failed
// append puts the status back, so an allocation never reports consumed or released
// without a matching entry.
type SettleMaterialCommandHandler struct {
	uowFactory  ReservationUoWFactory
	ledger      ports.Ledger
	policy      services.WorkflowPolicy
	metrics     *metrics.Metrics
	compensator compensator
}

func NewSettleMaterialCommandHandler(
	uowFactory ReservationUoWFactory,
	ledger ports.Ledger,
	policy services.WorkflowPolicy,
	m *metrics.Metrics,
	logger *logrus.Logger,
) SettleMaterialCommandHandler {
	return SettleMaterialCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		policy:     policy,
		metrics:    m,
		compensator: compensator{
			uowFactory: uowFactory,
			logger:     logger.WithField("component", "settle_material"),
			metrics:    m,
		},
	}
}

func (h SettleMaterialCommandHandler) Handle(ctx context.Context, cmd SettleMaterialCommand) (MaterialResult, error) {
	if err := cmd.Validate(); err != nil {
		return MaterialResult{}, err
	}

	now := time.Now()
	it, alloc, before, err := h.storeStatus(ctx, cmd, now)
	if err != nil {
		return MaterialResult{}, err
	}

	verb := "consumed"
	if cmd.Type() == stock.TxRelease {
		verb = "released"
	}
	ev, err := timeline.ForItem(it, timeline.ActionNoteAdded, cmd.Actor(), now)
	if err != nil {
		return MaterialResult{}, h.undo(ctx, cmd.Type(), before, alloc.Status(), err)
	}
	ev.WithNotes(joinNotes(fmt.Sprintf("%s %d sheets", verb, alloc.SheetsAllocated()), cmd.Notes()))

	jobID := alloc.JobID()
	tx, err := h.ledger.Append(ctx, alloc.PaperID(), stock.Entry{
		Type:     cmd.Type(),
		Quantity: alloc.SheetsAllocated(),
		JobID:    &jobID,
		ActorID:  cmd.Actor().ID(),
		Notes:    cmd.Notes(),
	}, ev)
	if err != nil {
		h.metrics.ObserveLedgerRejection(string(cmd.Type()), err)
		return MaterialResult{}, h.undo(ctx, cmd.Type(), before, alloc.Status(), err)
	}

	h.metrics.ObserveLedgerAppend(string(cmd.Type()))
	return MaterialResult{Allocation: alloc, Transaction: tx}, nil
}

func (h SettleMaterialCommandHandler) storeStatus(
	ctx context.Context,
	cmd SettleMaterialCommand,
	now time.Time,
) (*item.OrderItem, *allocation.Allocation, allocation.Snapshot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AllocationRepository()
	alloc, err := repo.Get(ctx, cmd.AllocationID())
	if err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	it, err := uow.OrderItemRepository().Get(ctx, alloc.JobID())
	if err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}
	if err = h.policy.AuthorizeDepartment(cmd.Actor(), it.Department(), string(cmd.Type())); err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	before := alloc.Snapshot()
	if cmd.Type() == stock.TxConsume {
		err = alloc.Consume(now)
	} else {
		err = alloc.Release(now)
	}
	if err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	if err = repo.UpdateStatus(ctx, alloc, allocation.StatusReserved); err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, allocation.Snapshot{}, err
	}

	return it, alloc, before, nil
}

// undo writes the reserved snapshot back, guarded on the status this handler stored.
func (h SettleMaterialCommandHandler) undo(
	ctx context.Context,
	operation stock.TxType,
	before allocation.Snapshot,
	stored allocation.Status,
	cause error,
) error {
	return h.compensator.compensate(ctx, operation, before.ID, cause,
		func(ctx context.Context, uow ReservationUoW) error {
			reverted, err := allocation.RestoreAllocation(before)
			if err != nil {
				return err
			}
			return uow.AllocationRepository().UpdateStatus(ctx, reverted, stored)
		})
}
