package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrGetWorkerByCodeQueryIsNotConstructed = errors.New(
		"GetWorkerByCodeQuery must be created via NewGetWorkerByCodeQuery constructor",
	)
)

// GetWorkerByCodeQuery resolves a worker by login code. Workers identify
// themselves on the shop floor with a short code instead of an id.
type GetWorkerByCodeQuery struct { //nolint:recvcheck //using for validation
	code string

	guard guard.ConstructorGuard
}

// NewGetWorkerByCodeQuery creates a query for the given login code.
func NewGetWorkerByCodeQuery(code string) (GetWorkerByCodeQuery, error) {
	q := GetWorkerByCodeQuery{
		guard: guard.NewConstructorGuard(),
	}

	if code == "" {
		return GetWorkerByCodeQuery{}, errs.NewValueIsRequiredError("code")
	}

	q.code = code
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWorkerByCodeQueryIsNotConstructed if validation fails.
func (q GetWorkerByCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerByCodeQueryIsNotConstructed)
}

// Code returns the login code being resolved.
func (q GetWorkerByCodeQuery) Code() string {
	return q.code
}

// WorkerView is the worker read model shared by the login and roster
// queries. AllowedStages is empty for admins, who may record any stage.
type WorkerView struct {
	ID            kernel.UUID
	Code          string
	FirstName     string
	LastName      string
	Role          string
	AllowedStages []string
}
