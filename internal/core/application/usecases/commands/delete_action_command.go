package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrDeleteActionCommandIsNotConstructed = errors.New(
	"DeleteActionCommand must be created via NewDeleteActionCommand constructor",
)

// DeleteActionCommand represents a request to remove a recorded action from
// the ledger, freeing its quota share.
type DeleteActionCommand struct { //nolint:recvcheck //using for validation
	actionID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteActionCommand creates a command to delete a recorded action.
func NewDeleteActionCommand(actionID, actorID kernel.UUID) (DeleteActionCommand, error) {
	cmd := DeleteActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActionID(actionID),
		cmd.setActorID(actorID),
	); err != nil {
		return DeleteActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteActionCommandIsNotConstructed if validation fails.
func (c DeleteActionCommand) Validate() error {
	return c.guard.Validate(ErrDeleteActionCommandIsNotConstructed)
}

// ActionID returns the identifier of the action being deleted.
func (c DeleteActionCommand) ActionID() kernel.UUID {
	return c.actionID
}

// ActorID returns the identifier of the requesting worker.
func (c DeleteActionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DeleteActionCommand) setActionID(actionID kernel.UUID) error {
	if err := actionID.Validate(); err != nil {
		return err
	}

	c.actionID = actionID
	return nil
}

func (c *DeleteActionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
