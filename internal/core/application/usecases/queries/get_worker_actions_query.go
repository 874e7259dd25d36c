package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrGetWorkerActionsQueryIsNotConstructed = errors.New(
		"GetWorkerActionsQuery must be created via NewGetWorkerActionsQuery constructor",
	)
)

// GetWorkerActionsQuery retrieves the actions a worker has recorded since a
// given moment, most recent first. Used for personal work journals and
// piece-rate payout reviews.
type GetWorkerActionsQuery struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	since    time.Time
	stage    *order.Stage

	guard guard.ConstructorGuard
}

// NewGetWorkerActionsQuery creates a query for the given worker. A zero
// since time covers the worker's full history.
func NewGetWorkerActionsQuery(workerID kernel.UUID, since time.Time) (GetWorkerActionsQuery, error) {
	q := GetWorkerActionsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := workerID.Validate(); err != nil {
		return GetWorkerActionsQuery{}, err
	}

	q.workerID = workerID
	q.since = since
	return q, nil
}

// NewGetWorkerActionsQueryWithStage creates a journal query narrowed to a
// single production stage.
func NewGetWorkerActionsQueryWithStage(
	workerID kernel.UUID,
	since time.Time,
	stage order.Stage,
) (GetWorkerActionsQuery, error) {
	if err := stage.Validate(); err != nil {
		return GetWorkerActionsQuery{}, err
	}

	q, err := NewGetWorkerActionsQuery(workerID, since)
	if err != nil {
		return GetWorkerActionsQuery{}, err
	}

	q.stage = &stage
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWorkerActionsQueryIsNotConstructed if validation fails.
func (q GetWorkerActionsQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerActionsQueryIsNotConstructed)
}

// WorkerID returns the identifier of the worker.
func (q GetWorkerActionsQuery) WorkerID() kernel.UUID {
	return q.workerID
}

// Since returns the lower bound of the journal window.
func (q GetWorkerActionsQuery) Since() time.Time {
	return q.since
}

// Stage returns the stage filter, nil when the journal covers all stages.
func (q GetWorkerActionsQuery) Stage() *order.Stage {
	return q.stage
}

// WorkerActionView is one journal entry: the action with its order and
// product context.
type WorkerActionView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	LineID    kernel.UUID
	SKU       string
	Stage     string
	Quantity  int
	Cost      float64
	Timestamp time.Time
}

// GetWorkerActionsQueryResponse is the journal read model with the summed
// cost over the window.
type GetWorkerActionsQueryResponse struct {
	Actions   []WorkerActionView
	TotalCost float64
}
