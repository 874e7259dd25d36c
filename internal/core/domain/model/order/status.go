package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Fetched ──(admin starts)──> InProgress <──> Done
//	    │                           │            │
//	    └───────────(admin)─────────┴────────────┴──> Cancelled
//
// InProgress and Done flip automatically from ledger activity through the
// order's RefreshStatus; Fetched and Cancelled are never entered or left by
// the automaton — only explicit admin transitions touch them.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Fetched is the initial status of an order coming from the external
	// order-management feed (or an admin create). No worker activity is
	// accepted until an admin starts the order.
	Fetched

	// InProgress indicates the order has been started and is being worked on.
	InProgress

	// Done indicates every line has every stage recorded in full.
	Done

	// Cancelled indicates the order was withdrawn. Reachable only by an
	// explicit admin transition, never automatically.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Fetched:       "fetched",
		InProgress:    "in_progress",
		Done:          "done",
		Cancelled:     "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Fetched:    "fetched",
		InProgress: "in_progress",
		Done:       "done",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start transitions the status from Fetched to InProgress.
// This is the explicit admin action that opens an order for ledger activity.
func (s Status) Start() (Status, error) {
	if s != Fetched {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()))
	}
	return InProgress, nil
}

// Cancel transitions the status to Cancelled from any non-cancelled state.
// Only explicit privileged actions reach this; the automaton never does.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("order is already cancelled"))
	}
	return Cancelled, nil
}

// AcceptsLedgerMutations reports whether the automaton reacts to ledger
// activity in this status. Fetched and Cancelled orders are inert.
func (s Status) AcceptsLedgerMutations() bool {
	return s == InProgress || s == Done
}
