package order

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrActionIsNotConstructed is returned when an Action instance was not
	// created through the Line's recording methods or RestoreAction.
	ErrActionIsNotConstructed = errors.New("Action must be created via Line.RecordAction or RestoreAction")
)

// Action is one recorded unit of work against a line: a stage, a quantity,
// the actor who performed it, a server-assigned timestamp and a monetary
// cost snapshotted at recording time.
//
// Stage and line are immutable after creation. Quantity may be amended
// (re-validated against the quota) and the cost is then re-priced under the
// configuration current at amend time; the original snapshot is otherwise
// never recomputed when factors change.
type Action struct {
	id        kernel.UUID
	lineID    kernel.UUID
	stage     Stage
	quantity  int
	cost      float64
	actorID   kernel.UUID
	timestamp time.Time

	isConstructed bool
}

func newAction(
	id kernel.UUID,
	lineID kernel.UUID,
	stage Stage,
	quantity int,
	cost float64,
	actorID kernel.UUID,
) (*Action, error) {
	a := &Action{
		timestamp:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setLineID(lineID),
		a.setStage(stage),
		a.setQuantity(quantity),
		a.setCost(cost),
		a.setActorID(actorID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAction reconstructs an Action from persistence.
func RestoreAction(
	id kernel.UUID,
	lineID kernel.UUID,
	stage Stage,
	quantity int,
	cost float64,
	actorID kernel.UUID,
	timestamp time.Time,
) (*Action, error) {
	a, err := newAction(id, lineID, stage, quantity, cost, actorID)
	if err != nil {
		return nil, err
	}
	a.timestamp = timestamp
	return a, nil
}

// Validate ensures the Action instance was properly constructed.
func (a *Action) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActionIsNotConstructed
	}
	return nil
}

// ID returns the action's unique identifier.
func (a *Action) ID() kernel.UUID {
	return a.id
}

// LineID returns the identifier of the line the action belongs to.
func (a *Action) LineID() kernel.UUID {
	return a.lineID
}

// Stage returns the production stage the action records work for.
func (a *Action) Stage() Stage {
	return a.stage
}

// Quantity returns the number of units recorded.
func (a *Action) Quantity() int {
	return a.quantity
}

// Cost returns the monetary cost snapshotted when the action was recorded
// or last amended.
func (a *Action) Cost() float64 {
	return a.cost
}

// ActorID returns the identifier of the worker who performed the action.
func (a *Action) ActorID() kernel.UUID {
	return a.actorID
}

// Timestamp returns the server-assigned creation time.
func (a *Action) Timestamp() time.Time {
	return a.timestamp
}

// amend updates quantity and cost together. Quota validation is the
// owning Line's responsibility.
func (a *Action) amend(quantity int, cost float64) error {
	if err := a.setQuantity(quantity); err != nil {
		return err
	}
	return a.setCost(cost)
}

func (a *Action) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Action) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	a.lineID = lineID
	return nil
}

func (a *Action) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	a.stage = stage
	return nil
}

func (a *Action) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	a.quantity = quantity
	return nil
}

func (a *Action) setCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid",
			fmt.Errorf("%f is negative", cost))
	}
	a.cost = cost
	return nil
}

func (a *Action) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	a.actorID = actorID
	return nil
}
