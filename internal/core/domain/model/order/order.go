package order

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root of the production ledger: it owns its lines
// (and through them the recorded actions) and the derived status field.
//
// Status is controlled: ledger mutations go through RecordAction,
// AmendAction and RemoveAction, each of which re-derives the status before
// returning, so a caller can never observe an action change without a
// consistent status. Explicit transitions (Start, Cancel, OverrideStatus)
// are reserved for privileged callers outside the ledger path.
type Order struct {
	id                   kernel.UUID
	externalRef          *int64
	source               string
	expectedShipmentDate *time.Time
	customerName         string
	company              string
	status               Status
	lines                []*Line

	isConstructed bool
}

// NewOrder creates a new Order in Fetched status with no lines.
// externalRef carries the order-management system's identifier for synced
// orders and is nil for orders created locally.
func NewOrder(
	id kernel.UUID,
	externalRef *int64,
	source string,
	expectedShipmentDate *time.Time,
	customerName string,
	company string,
) (*Order, error) {
	o := &Order{
		status:        Fetched,
		isConstructed: true,
	}

	if err := o.setID(id); err != nil {
		return nil, err
	}

	o.externalRef = externalRef
	o.source = source
	o.expectedShipmentDate = expectedShipmentDate
	o.customerName = customerName
	o.company = company
	return o, nil
}

// RestoreOrder reconstructs an Order with its lines from persistence.
func RestoreOrder(
	id kernel.UUID,
	externalRef *int64,
	source string,
	expectedShipmentDate *time.Time,
	customerName string,
	company string,
	status Status,
	lines []*Line,
) (*Order, error) {
	o, err := NewOrder(id, externalRef, source, expectedShipmentDate, customerName, company)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if err = l.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.lines = lines
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ExternalRef returns the order-management system's identifier,
// nil for locally created orders.
func (o *Order) ExternalRef() *int64 {
	return o.externalRef
}

// Source returns the sales channel label.
func (o *Order) Source() string {
	return o.source
}

// ExpectedShipmentDate returns the expected fulfillment date, nil when unset.
func (o *Order) ExpectedShipmentDate() *time.Time {
	return o.expectedShipmentDate
}

// CustomerName returns the customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Company returns the customer's company name, empty for private customers.
func (o *Order) Company() string {
	return o.company
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Lines returns the order's lines. The returned slice is a copy; mutations
// go through the aggregate methods.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// LineByID returns the line with the given identifier.
func (o *Order) LineByID(lineID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.id.IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line", lineID.String())
}

// FindAction locates an action anywhere in the order and returns it with
// its owning line.
func (o *Order) FindAction(actionID kernel.UUID) (*Line, *Action, error) {
	for _, l := range o.lines {
		if a, err := l.ActionByID(actionID); err == nil {
			return l, a, nil
		}
	}
	return nil, nil, errs.NewObjectNotFoundError("action", actionID.String())
}

// AddLine adds a new line for the given product. Each product may appear at
// most once per order. Adding a line to a Done order eagerly demotes it to
// InProgress: the new, unworked line breaks completeness.
func (o *Order) AddLine(lineID, productID kernel.UUID, requiredQuantity int) (*Line, error) {
	for _, l := range o.lines {
		if l.productID.IsEqual(productID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("product is invalid",
				fmt.Errorf("product %s already has a line in this order", productID))
		}
	}

	line, err := NewLine(lineID, o.id, productID, requiredQuantity)
	if err != nil {
		return nil, err
	}

	o.lines = append(o.lines, line)
	if o.status == Done {
		o.status = InProgress
	}
	return line, nil
}

// RemoveLine deletes a line and its actions, then re-derives the status.
func (o *Order) RemoveLine(lineID kernel.UUID) error {
	for i, l := range o.lines {
		if l.id.IsEqual(lineID) {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			o.refreshStatus()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("line", lineID.String())
}

// ChangeLineQuantity updates a line's required quantity and re-derives the
// status: raising the requirement of a complete line reopens the order,
// lowering it can complete the order. Lowering below recorded totals is
// rejected by the line.
func (o *Order) ChangeLineQuantity(lineID kernel.UUID, newQuantity int) error {
	line, err := o.LineByID(lineID)
	if err != nil {
		return err
	}

	if err = line.ChangeRequiredQuantity(newQuantity); err != nil {
		return err
	}

	o.refreshStatus()
	return nil
}

// RecordAction records work against a line and re-derives the status.
func (o *Order) RecordAction(
	lineID kernel.UUID,
	actionID kernel.UUID,
	stage Stage,
	quantity int,
	cost float64,
	actorID kernel.UUID,
) (*Action, error) {
	line, err := o.LineByID(lineID)
	if err != nil {
		return nil, err
	}

	action, err := line.RecordAction(actionID, stage, quantity, cost, actorID)
	if err != nil {
		return nil, err
	}

	o.refreshStatus()
	return action, nil
}

// AmendAction changes a recorded action's quantity and re-derives the status.
func (o *Order) AmendAction(actionID kernel.UUID, newQuantity int, newCost float64) (*Action, error) {
	line, _, err := o.FindAction(actionID)
	if err != nil {
		return nil, err
	}

	action, err := line.AmendAction(actionID, newQuantity, newCost)
	if err != nil {
		return nil, err
	}

	o.refreshStatus()
	return action, nil
}

// RemoveAction deletes a recorded action and re-derives the status.
// Deleting work from a Done order moves it back to InProgress.
func (o *Order) RemoveAction(actionID kernel.UUID) error {
	line, _, err := o.FindAction(actionID)
	if err != nil {
		return err
	}

	if err = line.RemoveAction(actionID); err != nil {
		return err
	}

	o.refreshStatus()
	return nil
}

// IsComplete reports whether the order has at least one line and every
// line is complete.
func (o *Order) IsComplete() bool {
	if len(o.lines) == 0 {
		return false
	}
	for _, l := range o.lines {
		if !l.IsComplete() {
			return false
		}
	}
	return true
}

// refreshStatus is the status automaton: applied after every ledger
// mutation, it flips InProgress to Done when the order became complete and
// Done back to InProgress when it stopped being complete. Fetched and
// Cancelled orders are never auto-transitioned.
func (o *Order) refreshStatus() {
	if !o.status.AcceptsLedgerMutations() {
		return
	}

	complete := o.IsComplete()
	switch {
	case complete && o.status != Done:
		o.status = Done
	case !complete && o.status == Done:
		o.status = InProgress
	}
}

// Start moves a Fetched order to InProgress. Explicit admin transition;
// ledger activity never starts an order.
func (o *Order) Start() error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel withdraws the order. Explicit admin transition from any
// non-cancelled state.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// OverrideStatus sets an arbitrary status. Admin-only escape hatch; all
// ledger-path writes go through refreshStatus instead.
func (o *Order) OverrideStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// SetExpectedShipmentDate updates the expected fulfillment date.
func (o *Order) SetExpectedShipmentDate(date *time.Time) {
	o.expectedShipmentDate = date
}

// SetCustomer updates the customer display fields.
func (o *Order) SetCustomer(name, company string) {
	o.customerName = name
	o.company = company
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}
