package queries

import (
	"context"
	"errors"

	"production/internal/core/domain/model/costing"
	"production/internal/pkg/guard"
)

var (
	ErrGetCostConfigQueryIsNotConstructed = errors.New(
		"GetCostConfigQuery must be created via NewGetCostConfigQuery constructor",
	)
)

// GetCostConfigQuery retrieves the active cost-model factors.
type GetCostConfigQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCostConfigQuery creates a cost-config query.
func NewGetCostConfigQuery() GetCostConfigQuery {
	return GetCostConfigQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCostConfigQueryIsNotConstructed if validation fails.
func (q GetCostConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetCostConfigQueryIsNotConstructed)
}

// CostConfigSource reads the active configuration. The persistence adapter
// owns the built-in-defaults fallback, so this query goes through it rather
// than raw SQL.
type CostConfigSource interface {
	Get(ctx context.Context) (costing.Config, error)
}

// GetCostConfigQueryHandler retrieves the active cost configuration.
type GetCostConfigQueryHandler struct {
	configs CostConfigSource
}

// NewGetCostConfigQueryHandler creates a handler reading from the given
// configuration source.
func NewGetCostConfigQueryHandler(configs CostConfigSource) GetCostConfigQueryHandler {
	return GetCostConfigQueryHandler{configs: configs}
}

// Handle executes the query. Returns the stored configuration, or the
// built-in defaults when none has been saved yet.
func (h GetCostConfigQueryHandler) Handle(
	ctx context.Context,
	query GetCostConfigQuery,
) (costing.Config, error) {
	if err := query.Validate(); err != nil {
		return costing.Config{}, err
	}

	return h.configs.Get(ctx)
}
