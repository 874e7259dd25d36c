package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
)

// CreateOrderCommand represents an admin request to register an order
// manually, outside the external order feed. The order starts in Fetched
// status with no lines.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	source               string
	expectedShipmentDate *time.Time
	customerName         string
	company              string
	actorID              kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order and actor identifiers are valid and the customer
// name is not empty. Source, company and shipment date are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	source string,
	expectedShipmentDate *time.Time,
	customerName string,
	company string,
	actorID kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerName(customerName),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.source = source
	cmd.expectedShipmentDate = expectedShipmentDate
	cmd.company = company
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Source returns the sales channel label, empty when unspecified.
func (c CreateOrderCommand) Source() string {
	return c.source
}

// ExpectedShipmentDate returns the expected fulfillment date, nil when unset.
func (c CreateOrderCommand) ExpectedShipmentDate() *time.Time {
	return c.expectedShipmentDate
}

// CustomerName returns the customer display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Company returns the customer's company name, empty for private customers.
func (c CreateOrderCommand) Company() string {
	return c.company
}

// ActorID returns the identifier of the requesting worker.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
