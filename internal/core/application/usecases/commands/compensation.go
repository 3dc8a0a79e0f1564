package commands

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// compensationAttempts is the first try plus one retry.
const compensationAttempts = 2

// MaterialResult is the outcome of a reservation write: the allocation as stored and
// the ledger entry that matches it.
type MaterialResult struct {
	Allocation  *allocation.Allocation
	Transaction *stock.Transaction
}

type undoFunc func(ctx context.Context, uow ReservationUoW) error

// compensator undoes the allocation write of a two-step reservation operation when the
// ledger append that follows it fails.
type compensator struct {
	uowFactory ReservationUoWFactory
	logger     *logrus.Entry
	metrics    *metrics.Metrics
}

// compensate returns cause when the undo succeeds. When every attempt fails, or the
// allocation was settled by someone else before it could be undone, the allocation no
// longer agrees with the ledger and a ConsistencyError is returned. A stale allocation is
// not retried.
func (c compensator) compensate(
	ctx context.Context,
	operation stock.TxType,
	allocationID kernel.UUID,
	cause error,
	undo undoFunc,
) error {
	// The caller's context may be the reason the append failed.
	ctx = context.WithoutCancel(ctx)
	fields := logrus.Fields{
		"operation":     string(operation),
		"allocation_id": allocationID.String(),
	}

	var undoErr error
	for attempt := 1; attempt <= compensationAttempts; attempt++ {
		if undoErr = c.run(ctx, undo); undoErr == nil {
			c.logger.WithFields(fields).WithError(cause).Info("ledger append failed, allocation write undone")
			return cause
		}
		if errors.Is(undoErr, errs.ErrStaleState) {
			break
		}
		c.logger.WithFields(fields).WithField("attempt", attempt).WithError(undoErr).Warn("compensation failed")
	}

	c.metrics.ObserveConsistencyError(string(operation))
	consistencyErr := errs.NewConsistencyError(string(operation), allocationID.String(), cause, undoErr)
	c.logger.WithFields(fields).WithError(consistencyErr).Error("allocation disagrees with ledger, operator action required")
	return consistencyErr
}

func (c compensator) run(ctx context.Context, undo undoFunc) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := undo(ctx, uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
