// Package rediscache materializes computed priority tiers in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "printshop:priority:"

// cachedTier is stored as JSON under keyPrefix+itemID. A hit requires both dates to match,
// so a tier computed yesterday or for an older delivery date is never served.
type cachedTier struct {
	Tier         string `json:"tier"`
	DeliveryDate string `json:"delivery_date"`
	ComputedOn   string `json:"computed_on"`
}

// PriorityCache implements ports.PriorityCache on go-redis.
type PriorityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewPriorityCache keeps entries for ttl; entries expire on their own even when nobody
// invalidates them. ttl <= 0 means 24h.
func NewPriorityCache(client redis.UniversalClient, ttl time.Duration) *PriorityCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &PriorityCache{client: client, ttl: ttl}
}

func (c *PriorityCache) Get(ctx context.Context, itemID kernel.UUID, deliveryDate, today time.Time) (priority.Tier, bool, error) {
	raw, err := c.client.Get(ctx, key(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var cached cachedTier
	if err = json.Unmarshal(raw, &cached); err != nil {
		return "", false, err
	}
	if cached.DeliveryDate != day(deliveryDate) || cached.ComputedOn != day(today) {
		return "", false, nil
	}

	tier, err := priority.Parse(cached.Tier)
	if err != nil {
		return "", false, err
	}
	return tier, true, nil
}

func (c *PriorityCache) Set(ctx context.Context, itemID kernel.UUID, deliveryDate, today time.Time, tier priority.Tier) error {
	raw, err := json.Marshal(cachedTier{
		Tier:         string(tier),
		DeliveryDate: day(deliveryDate),
		ComputedOn:   day(today),
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(itemID), raw, c.ttl).Err()
}

// Invalidate drops the entry; a missing entry is not an error.
func (c *PriorityCache) Invalidate(ctx context.Context, itemID kernel.UUID) error {
	return c.client.Del(ctx, key(itemID)).Err()
}

func key(itemID kernel.UUID) string {
	return keyPrefix + itemID.String()
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}
