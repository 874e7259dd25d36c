// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// WorkerRepoFactory provides access to worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// CostConfigRepoFactory provides access to cost-config repository within a transaction.
	CostConfigRepoFactory interface {
		CostConfigRepository() ports.CostConfigRepository
	}

	// OrderUoW manages transactions for order administration commands.
	// Carries the worker repository because these commands resolve the
	// acting worker to apply the admin policy.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LedgerUoW manages transactions for ledger commands that record,
	// amend or re-price actions. Pricing needs the product geometry and
	// the cost-model configuration alongside the order and the actor.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   workerRepo := uow.WorkerRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		WorkerRepoFactory
		CostConfigRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// SyncUoW manages transactions for the order feed synchronization,
	// which upserts products and orders together.
	SyncUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// SyncUoWFactory creates new sync unit of work instances.
	SyncUoWFactory interface {
		Create() SyncUoW
	}

	// CostConfigUoW manages transactions for cost-model configuration updates.
	CostConfigUoW interface {
		TxManager
		CostConfigRepoFactory
		WorkerRepoFactory
	}

	// CostConfigUoWFactory creates new cost-config unit of work instances.
	CostConfigUoWFactory interface {
		Create() CostConfigUoW
	}
)
