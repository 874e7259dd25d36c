package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The ForUpdate variants implement the concurrency gate: they acquire an
// exclusive lock on the targeted line's row (never the whole order or
// table) for the remainder of the surrounding transaction, so quota
// validation and status recomputation observe a stable line. Lock waits
// are bounded; a timed-out wait surfaces as a Contention error the caller
// may retry.
//
// Writes are scoped to match that lock: UpdateLine, InsertLine and
// RemoveLine persist a single line (plus the derived order status) and
// never touch sibling lines, so lines of one order can be mutated in
// parallel without clobbering each other's committed rows. Update covers
// the order header only.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines and actions.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's header fields and derived status. It
	// writes no line or action rows.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateLine persists one line of the aggregate — the line row, its
	// actions and the derived order status. The caller must hold the
	// FOR UPDATE lock on that line.
	UpdateLine(ctx context.Context, aggregate *order.Order, lineID kernel.UUID) error

	// InsertLine persists a line newly added to the aggregate, plus the
	// derived order status. A colliding line id is an error.
	InsertLine(ctx context.Context, aggregate *order.Order, lineID kernel.UUID) error

	// RemoveLine deletes the line row (its actions cascade) and persists
	// the derived order status. The caller must hold the FOR UPDATE lock
	// on that line.
	RemoveLine(ctx context.Context, aggregate *order.Order, lineID kernel.UUID) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByExternalRef retrieves the order synced from the external
	// order-management system under the given reference.
	GetByExternalRef(ctx context.Context, externalRef int64) (*order.Order, error)

	// GetByLineID retrieves the order owning the given line, without locking.
	GetByLineID(ctx context.Context, lineID kernel.UUID) (*order.Order, error)

	// GetByLineIDForUpdate locks the line row exclusively, then retrieves
	// the owning order aggregate. Must run inside a transaction.
	GetByLineIDForUpdate(ctx context.Context, lineID kernel.UUID) (*order.Order, error)

	// GetByActionIDForUpdate resolves the action's line, locks that line
	// row exclusively, then retrieves the owning order aggregate. Returns
	// ObjectNotFound when the action vanished before or after the lock.
	// Must run inside a transaction.
	GetByActionIDForUpdate(ctx context.Context, actionID kernel.UUID) (*order.Order, error)
}
