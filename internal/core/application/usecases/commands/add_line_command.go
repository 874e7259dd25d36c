package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAddLineCommandIsNotConstructed = errors.New(
	"AddLineCommand must be created via NewAddLineCommand constructor",
)

// AddLineCommand represents an admin request to add a product position to
// an order. Each product may appear at most once per order.
type AddLineCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	lineID           kernel.UUID
	productID        kernel.UUID
	requiredQuantity int
	actorID          kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddLineCommand creates a command to add a line to an order.
// Validates that all identifiers are valid and the required quantity is
// positive.
func NewAddLineCommand(
	orderID kernel.UUID,
	lineID kernel.UUID,
	productID kernel.UUID,
	requiredQuantity int,
	actorID kernel.UUID,
) (AddLineCommand, error) {
	cmd := AddLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineID(lineID),
		cmd.setProductID(productID),
		cmd.setRequiredQuantity(requiredQuantity),
		cmd.setActorID(actorID),
	); err != nil {
		return AddLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddLineCommandIsNotConstructed if validation fails.
func (c AddLineCommand) Validate() error {
	return c.guard.Validate(ErrAddLineCommandIsNotConstructed)
}

// OrderID returns the identifier of the targeted order.
func (c AddLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the unique identifier for the new line.
func (c AddLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// ProductID returns the identifier of the product the line produces.
func (c AddLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// RequiredQuantity returns the number of units the line must produce.
func (c AddLineCommand) RequiredQuantity() int {
	return c.requiredQuantity
}

// ActorID returns the identifier of the requesting worker.
func (c AddLineCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AddLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *AddLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddLineCommand) setRequiredQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.requiredQuantity = quantity
	return nil
}

func (c *AddLineCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
