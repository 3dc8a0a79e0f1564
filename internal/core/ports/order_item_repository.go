// Package ports defines the persistence and collaborator contracts of the fulfillment
// core. Adapters in internal/adapters implement them; application handlers depend on
// them only.
package ports

import (
	"context"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
)

// OrderItemRepository defines the persistence contract for the OrderItem aggregate.
type OrderItemRepository interface {
	// Add persists a new item at version 1.
	Add(ctx context.Context, aggregate *item.OrderItem) error

	// Update writes the item only if the stored version still equals aggregate.Version().
	// On success the aggregate's version is bumped. A lost race returns *errs.StaleStateError.
	Update(ctx context.Context, aggregate *item.OrderItem) error

	// Get returns the item or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error)
}
