package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrSubmitActionCommandIsNotConstructed = errors.New(
		"SubmitActionCommand must be created via NewSubmitActionCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// SubmitActionCommand represents a worker's report of completed stage work
// against an order line.
//
// Example:
//
//	cmd, err := NewSubmitActionCommand(lineID, order.StageCutting, 5, workerID)
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
//
//	handler := NewSubmitActionCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to record action: %w", err)
//	}
//	fmt.Printf("Recorded %d units at cost %.2f", result.Quantity, result.Cost)
type SubmitActionCommand struct { //nolint:recvcheck //using for validation
	lineID   kernel.UUID
	stage    order.Stage
	quantity int
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitActionCommand creates a command to record completed stage work.
// Validates that the line and actor identifiers are valid, the stage is one
// of the fixed production stages, and the quantity is positive.
func NewSubmitActionCommand(
	lineID kernel.UUID,
	stage order.Stage,
	quantity int,
	actorID kernel.UUID,
) (SubmitActionCommand, error) {
	cmd := SubmitActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLineID(lineID),
		cmd.setStage(stage),
		cmd.setQuantity(quantity),
		cmd.setActorID(actorID),
	); err != nil {
		return SubmitActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitActionCommandIsNotConstructed if validation fails.
func (c SubmitActionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitActionCommandIsNotConstructed)
}

// LineID returns the identifier of the targeted order line.
func (c SubmitActionCommand) LineID() kernel.UUID {
	return c.lineID
}

// Stage returns the production stage the work belongs to.
func (c SubmitActionCommand) Stage() order.Stage {
	return c.stage
}

// Quantity returns the number of units reported.
func (c SubmitActionCommand) Quantity() int {
	return c.quantity
}

// ActorID returns the identifier of the submitting worker.
func (c SubmitActionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SubmitActionCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *SubmitActionCommand) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *SubmitActionCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *SubmitActionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
