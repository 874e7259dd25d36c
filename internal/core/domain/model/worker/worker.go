package worker

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

var (
	// ErrWorkerIsNotConstructed is returned when a Worker instance was not
	// created through NewWorker or RestoreWorker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker")
)

// Role represents a worker's privilege level.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	UnknownRole Role = iota

	// RoleWorker performs production stages within their allowed set and
	// may only touch their own actions.
	RoleWorker

	// RoleAdmin may perform any stage, touch any action, and use the
	// explicit order transitions.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		RoleWorker:  "worker",
		RoleAdmin:   "admin",
	}
}

// RoleFromString parses a role from its wire representation.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "worker":
		return RoleWorker, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r != RoleWorker && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Worker is an actor who records production work. Identity resolution
// (login by code) belongs to the caller layer; the ledger consumes a
// Worker only to apply the stage-capability and ownership policies.
type Worker struct {
	id            kernel.UUID
	code          string
	firstName     string
	lastName      string
	role          Role
	allowedStages []order.Stage

	isConstructed bool
}

// NewWorker creates a new Worker with validation.
func NewWorker(
	id kernel.UUID,
	code string,
	firstName string,
	lastName string,
	role Role,
	allowedStages []order.Stage,
) (*Worker, error) {
	w := &Worker{
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setCode(code),
		w.setNames(firstName, lastName),
		w.setRole(role),
		w.setAllowedStages(allowedStages),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWorker reconstructs a Worker from persistence.
func RestoreWorker(
	id kernel.UUID,
	code string,
	firstName string,
	lastName string,
	role Role,
	allowedStages []order.Stage,
) (*Worker, error) {
	return NewWorker(id, code, firstName, lastName, role, allowedStages)
}

// Validate ensures the Worker instance was properly constructed.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Code returns the worker's login code.
func (w *Worker) Code() string {
	return w.code
}

// FirstName returns the worker's first name.
func (w *Worker) FirstName() string {
	return w.firstName
}

// LastName returns the worker's last name.
func (w *Worker) LastName() string {
	return w.lastName
}

// Name returns the full display name.
func (w *Worker) Name() string {
	return w.firstName + " " + w.lastName
}

// Role returns the worker's role.
func (w *Worker) Role() Role {
	return w.role
}

// AllowedStages returns the stages the worker may record. Admins perform
// any stage regardless of this list.
func (w *Worker) AllowedStages() []order.Stage {
	out := make([]order.Stage, len(w.allowedStages))
	copy(out, w.allowedStages)
	return out
}

// IsAdmin reports whether the worker has elevated privileges.
func (w *Worker) IsAdmin() bool {
	return w.role == RoleAdmin
}

// CanPerform reports whether the worker may record work for the given
// stage. This policy check is cheap and runs before any lock is taken.
func (w *Worker) CanPerform(stage order.Stage) bool {
	if w.IsAdmin() {
		return true
	}
	for _, s := range w.allowedStages {
		if s == stage {
			return true
		}
	}
	return false
}

// CanTouchAction reports whether the worker may amend or delete the action
// recorded by ownerID. Workers own their actions; admins own all.
func (w *Worker) CanTouchAction(ownerID kernel.UUID) bool {
	return w.IsAdmin() || w.id.IsEqual(ownerID)
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	w.code = code
	return nil
}

func (w *Worker) setNames(firstName, lastName string) error {
	if firstName == "" {
		return errs.NewValueIsRequiredError("first name")
	}
	if lastName == "" {
		return errs.NewValueIsRequiredError("last name")
	}
	w.firstName = firstName
	w.lastName = lastName
	return nil
}

func (w *Worker) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	w.role = role
	return nil
}

func (w *Worker) setAllowedStages(stages []order.Stage) error {
	for _, s := range stages {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	w.allowedStages = stages
	return nil
}
