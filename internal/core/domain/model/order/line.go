package order

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrLineIsNotConstructed is returned when a Line instance was not
	// created through NewLine or RestoreLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")
)

// Line is one product entry within an order: a product reference, the
// required quantity to produce, and the actions recorded against it.
//
// The Line is the quota ledger: for every stage, the sum of recorded action
// quantities never exceeds the required quantity. All mutations re-validate
// against the requirement as it is at that moment. Serialization of
// concurrent mutators is the repository's concern; given serialized access,
// the methods here keep the invariant.
type Line struct {
	id               kernel.UUID
	orderID          kernel.UUID
	productID        kernel.UUID
	requiredQuantity int
	actions          []*Action

	isConstructed bool
}

// NewLine creates a new empty Line with validation.
func NewLine(id, orderID, productID kernel.UUID, requiredQuantity int) (*Line, error) {
	l := &Line{
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setOrderID(orderID),
		l.setProductID(productID),
		l.setRequiredQuantity(requiredQuantity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine reconstructs a Line and its actions from persistence.
func RestoreLine(
	id, orderID, productID kernel.UUID,
	requiredQuantity int,
	actions []*Action,
) (*Line, error) {
	l, err := NewLine(id, orderID, productID, requiredQuantity)
	if err != nil {
		return nil, err
	}

	for _, a := range actions {
		if err = a.Validate(); err != nil {
			return nil, err
		}
	}
	l.actions = actions
	return l, nil
}

// Validate ensures the Line instance was properly constructed.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// OrderID returns the identifier of the parent order.
func (l *Line) OrderID() kernel.UUID {
	return l.orderID
}

// ProductID returns the identifier of the product this line produces.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// RequiredQuantity returns the number of units the line must produce.
func (l *Line) RequiredQuantity() int {
	return l.requiredQuantity
}

// Actions returns the recorded actions. The returned slice is a copy;
// mutations go through the recording methods.
func (l *Line) Actions() []*Action {
	out := make([]*Action, len(l.actions))
	copy(out, l.actions)
	return out
}

// ActionByID returns the action with the given identifier, or an
// ObjectNotFoundError when no such action exists on this line.
func (l *Line) ActionByID(actionID kernel.UUID) (*Action, error) {
	for _, a := range l.actions {
		if a.id.IsEqual(actionID) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("action", actionID.String())
}

// StageTotal returns the sum of recorded quantities for the given stage.
func (l *Line) StageTotal(stage Stage) int {
	total := 0
	for _, a := range l.actions {
		if a.stage == stage {
			total += a.quantity
		}
	}
	return total
}

// StageTotals returns the per-stage sums for every stage in the fixed set.
// Stages with no recorded work map to zero.
func (l *Line) StageTotals() map[Stage]int {
	totals := make(map[Stage]int, len(Stages()))
	for _, stage := range Stages() {
		totals[stage] = 0
	}
	for _, a := range l.actions {
		totals[a.stage] += a.quantity
	}
	return totals
}

// stageTotalExcluding sums the stage's quantities skipping one action,
// used when amending that action.
func (l *Line) stageTotalExcluding(stage Stage, actionID kernel.UUID) int {
	total := 0
	for _, a := range l.actions {
		if a.stage == stage && !a.id.IsEqual(actionID) {
			total += a.quantity
		}
	}
	return total
}

// RecordAction validates and appends a new action. Fails with a
// QuotaExceededError when the stage's total plus the new quantity would
// exceed the required quantity; the line is left untouched on any failure.
func (l *Line) RecordAction(
	actionID kernel.UUID,
	stage Stage,
	quantity int,
	cost float64,
	actorID kernel.UUID,
) (*Action, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	currentTotal := l.StageTotal(stage)
	if quantity > 0 && currentTotal+quantity > l.requiredQuantity {
		return nil, errs.NewQuotaExceededError(stage.String(), currentTotal, quantity, l.requiredQuantity)
	}

	action, err := newAction(actionID, l.id, stage, quantity, cost, actorID)
	if err != nil {
		return nil, err
	}

	l.actions = append(l.actions, action)
	return action, nil
}

// AmendAction changes an action's quantity, re-validating the quota with
// the amended action excluded from the current total. Stage and line are
// immutable; only the quantity (and the re-priced cost) change.
func (l *Line) AmendAction(actionID kernel.UUID, newQuantity int, newCost float64) (*Action, error) {
	action, err := l.ActionByID(actionID)
	if err != nil {
		return nil, err
	}

	currentTotal := l.stageTotalExcluding(action.stage, actionID)
	if newQuantity > 0 && currentTotal+newQuantity > l.requiredQuantity {
		return nil, errs.NewQuotaExceededError(action.stage.String(), currentTotal, newQuantity, l.requiredQuantity)
	}

	if err = action.amend(newQuantity, newCost); err != nil {
		return nil, err
	}
	return action, nil
}

// RemoveAction deletes an action from the line.
func (l *Line) RemoveAction(actionID kernel.UUID) error {
	for i, a := range l.actions {
		if a.id.IsEqual(actionID) {
			l.actions = append(l.actions[:i], l.actions[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("action", actionID.String())
}

// IsComplete reports whether every stage's recorded total equals the
// required quantity exactly. A line with no actions is not complete, and a
// total above the requirement (impossible under the quota invariant) is
// deliberately not treated as complete either.
func (l *Line) IsComplete() bool {
	for _, stage := range Stages() {
		if l.StageTotal(stage) != l.requiredQuantity {
			return false
		}
	}
	return true
}

// ChangeRequiredQuantity updates the requirement. Lowering it below any
// stage's already-recorded total is rejected with a QuotaExceededError:
// recorded work is never silently invalidated.
func (l *Line) ChangeRequiredQuantity(newQuantity int) error {
	if newQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("required quantity is invalid",
			fmt.Errorf("%d is not greater than 0", newQuantity))
	}

	for _, stage := range Stages() {
		if total := l.StageTotal(stage); total > newQuantity {
			return errs.NewQuotaExceededError(stage.String(), total, 0, newQuantity)
		}
	}

	l.requiredQuantity = newQuantity
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setRequiredQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("required quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.requiredQuantity = quantity
	return nil
}
