package ports

import (
	"context"

	"production/internal/core/domain/model/costing"
)

// CostConfigRepository defines the persistence contract for the cost-model
// configuration. The configuration is a singleton: Get returns the stored
// factors or the calibrated defaults when nothing was saved yet.
type CostConfigRepository interface {
	// Get retrieves the current cost-model configuration.
	Get(ctx context.Context) (costing.Config, error)

	// Save stores the configuration, replacing the previous one. Costs
	// already snapshotted on recorded actions are unaffected.
	Save(ctx context.Context, cfg costing.Config) error
}
