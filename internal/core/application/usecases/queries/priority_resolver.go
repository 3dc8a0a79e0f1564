// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built with direct SQL; none of them writes, so repeating a
// query without intervening commands returns the same result.
package queries

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/core/ports"

	"github.com/sirupsen/logrus"
)

// priorityResolver computes the tier of an item on read. The cache is a shortcut only:
// a miss or any cache failure falls back to priority.Compute.
type priorityResolver struct {
	cache  ports.PriorityCache
	logger *logrus.Entry
	now    func() time.Time
}

func newPriorityResolver(cache ports.PriorityCache, logger *logrus.Logger) priorityResolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return priorityResolver{
		cache:  cache,
		logger: logger.WithField("component", "priority"),
		now:    time.Now,
	}
}

func (r priorityResolver) resolve(ctx context.Context, itemID kernel.UUID, deliveryDate, today time.Time) priority.Tier {
	if r.cache == nil {
		return priority.Compute(deliveryDate, today)
	}

	tier, ok, err := r.cache.Get(ctx, itemID, deliveryDate, today)
	if err != nil {
		r.logger.WithError(err).WithField("item_id", itemID.String()).Debug("priority cache read failed")
	}
	if ok {
		return tier
	}

	tier = priority.Compute(deliveryDate, today)
	if err = r.cache.Set(ctx, itemID, deliveryDate, today, tier); err != nil {
		r.logger.WithError(err).WithField("item_id", itemID.String()).Debug("priority cache write failed")
	}
	return tier
}
