package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrChangeLineQuantityCommandIsNotConstructed = errors.New(
	"ChangeLineQuantityCommand must be created via NewChangeLineQuantityCommand constructor",
)

// ChangeLineQuantityCommand represents an admin request to change a line's
// required quantity. Lowering it below any stage's recorded total is
// rejected so recorded work is never invalidated.
type ChangeLineQuantityCommand struct { //nolint:recvcheck //using for validation
	lineID      kernel.UUID
	newQuantity int
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeLineQuantityCommand creates a command to change a line's
// required quantity. Validates that the identifiers are valid and the new
// quantity is positive.
func NewChangeLineQuantityCommand(
	lineID kernel.UUID,
	newQuantity int,
	actorID kernel.UUID,
) (ChangeLineQuantityCommand, error) {
	cmd := ChangeLineQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLineID(lineID),
		cmd.setNewQuantity(newQuantity),
		cmd.setActorID(actorID),
	); err != nil {
		return ChangeLineQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeLineQuantityCommandIsNotConstructed if validation fails.
func (c ChangeLineQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeLineQuantityCommandIsNotConstructed)
}

// LineID returns the identifier of the targeted line.
func (c ChangeLineQuantityCommand) LineID() kernel.UUID {
	return c.lineID
}

// NewQuantity returns the replacement required quantity.
func (c ChangeLineQuantityCommand) NewQuantity() int {
	return c.newQuantity
}

// ActorID returns the identifier of the requesting worker.
func (c ChangeLineQuantityCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ChangeLineQuantityCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *ChangeLineQuantityCommand) setNewQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.newQuantity = quantity
	return nil
}

func (c *ChangeLineQuantityCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
