package ports

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
)

// PriorityCache is a read-through materialization of computed tiers. A cached tier is
// returned only for the same delivery date and the same calendar day; everything else
// is a miss. It is never authoritative.
type PriorityCache interface {
	Get(ctx context.Context, itemID kernel.UUID, deliveryDate, today time.Time) (priority.Tier, bool, error)
	Set(ctx context.Context, itemID kernel.UUID, deliveryDate, today time.Time, tier priority.Tier) error
	Invalidate(ctx context.Context, itemID kernel.UUID) error
}
