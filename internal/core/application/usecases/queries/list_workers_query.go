package queries

import (
	"errors"

	"production/internal/pkg/guard"
)

var (
	ErrListWorkersQueryIsNotConstructed = errors.New(
		"ListWorkersQuery must be created via NewListWorkersQuery constructor",
	)
)

// ListWorkersQuery retrieves the full worker roster ordered by login code.
type ListWorkersQuery struct {
	guard guard.ConstructorGuard
}

// NewListWorkersQuery creates a roster query.
func NewListWorkersQuery() ListWorkersQuery {
	return ListWorkersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListWorkersQueryIsNotConstructed if validation fails.
func (q ListWorkersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkersQueryIsNotConstructed)
}
