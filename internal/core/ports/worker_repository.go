package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker identities.
type WorkerRepository interface {
	// Add persists a new worker.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Update persists changes to an existing worker.
	Update(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker by their unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetByCode retrieves a worker by their login code.
	GetByCode(ctx context.Context, code string) (*worker.Worker, error)
}
