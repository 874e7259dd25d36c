package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAmendActionCommandIsNotConstructed = errors.New(
	"AmendActionCommand must be created via NewAmendActionCommand constructor",
)

// AmendActionCommand represents a request to change the quantity of an
// already recorded action. Stage and line are immutable; the cost is
// re-priced from the current cost-model configuration.
type AmendActionCommand struct { //nolint:recvcheck //using for validation
	actionID    kernel.UUID
	newQuantity int
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAmendActionCommand creates a command to amend a recorded action.
// Validates that identifiers are valid and the new quantity is positive.
func NewAmendActionCommand(
	actionID kernel.UUID,
	newQuantity int,
	actorID kernel.UUID,
) (AmendActionCommand, error) {
	cmd := AmendActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActionID(actionID),
		cmd.setNewQuantity(newQuantity),
		cmd.setActorID(actorID),
	); err != nil {
		return AmendActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAmendActionCommandIsNotConstructed if validation fails.
func (c AmendActionCommand) Validate() error {
	return c.guard.Validate(ErrAmendActionCommandIsNotConstructed)
}

// ActionID returns the identifier of the action being amended.
func (c AmendActionCommand) ActionID() kernel.UUID {
	return c.actionID
}

// NewQuantity returns the replacement quantity.
func (c AmendActionCommand) NewQuantity() int {
	return c.newQuantity
}

// ActorID returns the identifier of the requesting worker.
func (c AmendActionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AmendActionCommand) setActionID(actionID kernel.UUID) error {
	if err := actionID.Validate(); err != nil {
		return err
	}

	c.actionID = actionID
	return nil
}

func (c *AmendActionCommand) setNewQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.newQuantity = quantity
	return nil
}

func (c *AmendActionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
