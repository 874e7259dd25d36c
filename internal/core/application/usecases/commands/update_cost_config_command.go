package commands

import (
	"errors"

	"production/internal/core/domain/model/costing"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrUpdateCostConfigCommandIsNotConstructed = errors.New(
	"UpdateCostConfigCommand must be created via NewUpdateCostConfigCommand constructor",
)

// UpdateCostConfigCommand represents an admin request to replace the
// cost-model configuration. Costs already snapshotted on recorded actions
// keep their original values.
type UpdateCostConfigCommand struct { //nolint:recvcheck //using for validation
	config  costing.Config
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateCostConfigCommand creates a command to replace the cost-model
// configuration. The configuration must itself be a constructed value.
func NewUpdateCostConfigCommand(
	config costing.Config,
	actorID kernel.UUID,
) (UpdateCostConfigCommand, error) {
	cmd := UpdateCostConfigCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConfig(config),
		cmd.setActorID(actorID),
	); err != nil {
		return UpdateCostConfigCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateCostConfigCommandIsNotConstructed if validation fails.
func (c UpdateCostConfigCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCostConfigCommandIsNotConstructed)
}

// Config returns the replacement configuration.
func (c UpdateCostConfigCommand) Config() costing.Config {
	return c.config
}

// ActorID returns the identifier of the requesting worker.
func (c UpdateCostConfigCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *UpdateCostConfigCommand) setConfig(config costing.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	c.config = config
	return nil
}

func (c *UpdateCostConfigCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
