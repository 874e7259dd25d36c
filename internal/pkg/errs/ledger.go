package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for ledger business rules.
var (
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrForbidden     = errors.New("operation is forbidden")
	ErrContention    = errors.New("resource is locked by a concurrent operation")
)

// QuotaExceededError indicates that recording or amending an action would
// push a stage total past the line's required quantity. It carries the
// current total and the limit so callers can report how much is still allowed.
type QuotaExceededError struct {
	Stage        string
	CurrentTotal int
	Requested    int
	Limit        int
}

// NewQuotaExceededError creates a QuotaExceededError for the given stage totals.
func NewQuotaExceededError(stage string, currentTotal, requested, limit int) *QuotaExceededError {
	return &QuotaExceededError{
		Stage:        stage,
		CurrentTotal: currentTotal,
		Requested:    requested,
		Limit:        limit,
	}
}

// Remaining returns how many units can still be recorded for the stage.
func (e *QuotaExceededError) Remaining() int {
	remaining := e.Limit - e.CurrentTotal
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: stage %s has %d of %d recorded, requested %d more",
		ErrQuotaExceeded, e.Stage, e.CurrentTotal, e.Limit, e.Requested)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// ForbiddenError indicates a policy violation: a worker acting outside their
// allowed stages, touching someone else's action, or mutating an order that
// has not been started.
type ForbiddenError struct {
	Reason string
	Cause  error
}

// NewForbiddenError creates a ForbiddenError with a human-readable reason.
func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(reason string, cause error) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrForbidden, e.Reason, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrForbidden, e.Reason))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ContentionError indicates a bounded lock wait that timed out. The operation
// left no partial state behind and is safe to retry; the caller decides whether to.
type ContentionError struct {
	Resource string
	Cause    error
}

// NewContentionError creates a ContentionError for the named resource.
func NewContentionError(resource string, cause error) *ContentionError {
	return &ContentionError{Resource: resource, Cause: cause}
}

func (e *ContentionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrContention, e.Resource, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrContention, e.Resource))
}

func (e *ContentionError) Unwrap() error {
	return ErrContention
}
