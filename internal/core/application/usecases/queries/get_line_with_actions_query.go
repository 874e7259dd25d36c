// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrGetLineWithActionsQueryIsNotConstructed = errors.New(
		"GetLineWithActionsQuery must be created via NewGetLineWithActionsQuery constructor",
	)
)

// GetLineWithActionsQuery retrieves one order line with its product, the
// per-stage recorded totals and every recorded action. This is the view a
// worker sees before submitting more work.
type GetLineWithActionsQuery struct { //nolint:recvcheck //using for validation
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLineWithActionsQuery creates a query for the given line.
func NewGetLineWithActionsQuery(lineID kernel.UUID) (GetLineWithActionsQuery, error) {
	q := GetLineWithActionsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := lineID.Validate(); err != nil {
		return GetLineWithActionsQuery{}, err
	}

	q.lineID = lineID
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLineWithActionsQueryIsNotConstructed if validation fails.
func (q GetLineWithActionsQuery) Validate() error {
	return q.guard.Validate(ErrGetLineWithActionsQueryIsNotConstructed)
}

// LineID returns the identifier of the requested line.
func (q GetLineWithActionsQuery) LineID() kernel.UUID {
	return q.lineID
}

// ActionView is one recorded action in the line read model, including the
// resolved actor display name.
type ActionView struct {
	ID        kernel.UUID
	Stage     string
	Quantity  int
	Cost      float64
	ActorID   kernel.UUID
	ActorName string
	Timestamp time.Time
}

// GetLineWithActionsQueryResponse is the line read model: product context,
// the requirement, per-stage totals and the action history ordered by time.
type GetLineWithActionsQueryResponse struct {
	LineID           kernel.UUID
	OrderID          kernel.UUID
	OrderStatus      string
	SKU              string
	Fabric           string
	Pattern          string
	RequiredQuantity int
	StageTotals      map[string]int
	Actions          []ActionView
}
