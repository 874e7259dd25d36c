package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrGetOrdersBoardQueryIsNotConstructed = errors.New(
		"GetOrdersBoardQuery must be created via NewGetOrdersBoardQuery constructor",
	)
)

// GetOrdersBoardQuery retrieves the production board: every order with its
// aggregate progress numbers, optionally filtered by status.
type GetOrdersBoardQuery struct { //nolint:recvcheck //using for validation
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersBoardQuery creates a board query over all orders.
func NewGetOrdersBoardQuery() GetOrdersBoardQuery {
	return GetOrdersBoardQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersBoardQueryWithStatus creates a board query filtered to one status.
func NewGetOrdersBoardQueryWithStatus(status order.Status) (GetOrdersBoardQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersBoardQuery{}, err
	}

	q := NewGetOrdersBoardQuery()
	q.status = &status
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersBoardQueryIsNotConstructed if validation fails.
func (q GetOrdersBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersBoardQueryIsNotConstructed)
}

// Status returns the status filter, nil when the board covers all statuses.
func (q GetOrdersBoardQuery) Status() *order.Status {
	return q.status
}

// GetOrdersBoardQueryResponse is one row of the production board.
// RequiredTotal sums the required quantities over the order's lines;
// RecordedTotal sums every recorded action quantity across all stages.
type GetOrdersBoardQueryResponse struct {
	ID                   kernel.UUID
	ExternalRef          *int64
	Source               string
	CustomerName         string
	Company              string
	ExpectedShipmentDate *time.Time
	Status               string
	LineCount            int
	RequiredTotal        int
	RecordedTotal        int
}
