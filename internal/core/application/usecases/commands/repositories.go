// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization, transaction
// management and persistence, with a timeline event for every state change.
package commands

import (
	"context"

	"printshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	PaperStockRepoFactory interface {
		PaperStockRepository() ports.PaperStockRepository
	}

	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	TimelineRepoFactory interface {
		TimelineRepository() ports.TimelineRepository
	}

	// ItemUoW manages transactions for workflow operations: the item and its timeline.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   it, err := uow.OrderItemRepository().Get(ctx, id)
	//   // ... mutate it
	//   err = uow.OrderItemRepository().Update(ctx, it)
	//   err = uow.TimelineRepository().Add(ctx, event)
	//
	//   err = uow.Commit(ctx)
	ItemUoW interface {
		TxManager
		OrderItemRepoFactory
		TimelineRepoFactory
	}

	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// StockUoW manages transactions for paper SKU administration.
	StockUoW interface {
		TxManager
		PaperStockRepoFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	// ReservationUoW manages the allocation side of the two-step reservation writes.
	// The ledger side runs in its own transaction through ports.Ledger.
	ReservationUoW interface {
		TxManager
		OrderItemRepoFactory
		PaperStockRepoFactory
		AllocationRepoFactory
	}

	ReservationUoWFactory interface {
		Create() ReservationUoW
	}
)
