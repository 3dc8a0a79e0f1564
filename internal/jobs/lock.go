package jobs

import (
	"context"
	"time"

	"printshop/internal/core/application/usecases/queries"
)

// RunLock serializes a job across replicas. Acquire must not block; acquired is
// false when another replica holds the lock.
type RunLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}

type ledgerVerifier interface {
	Handle(ctx context.Context, query queries.VerifyLedgerQuery) ([]queries.LedgerReport, error)
}

type paperLister interface {
	Handle(ctx context.Context, query queries.ListPaperStockQuery) ([]queries.PaperStockView, error)
}

func noRelease(context.Context) error { return nil }

func acquire(ctx context.Context, lock RunLock, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	if lock == nil {
		return noRelease, true, nil
	}
	release, ok, err := lock.Acquire(ctx, name, ttl)
	if err != nil || !ok {
		return nil, false, err
	}
	return release, true, nil
}
