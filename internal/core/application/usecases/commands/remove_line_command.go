package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand represents an admin request to remove a line and all
// its recorded actions from an order.
type RemoveLineCommand struct { //nolint:recvcheck //using for validation
	lineID  kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineCommand creates a command to remove a line from an order.
func NewRemoveLineCommand(lineID, actorID kernel.UUID) (RemoveLineCommand, error) {
	cmd := RemoveLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLineID(lineID),
		cmd.setActorID(actorID),
	); err != nil {
		return RemoveLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveLineCommandIsNotConstructed if validation fails.
func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

// LineID returns the identifier of the targeted line.
func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// ActorID returns the identifier of the requesting worker.
func (c RemoveLineCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RemoveLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *RemoveLineCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
