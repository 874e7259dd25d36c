package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// UpdateCostConfigCommandHandler handles cost-model configuration updates.
// The new factors apply to actions recorded after the commit; existing
// snapshot costs are left untouched.
type UpdateCostConfigCommandHandler struct {
	uowFactory CostConfigUoWFactory
}

// NewUpdateCostConfigCommandHandler creates a handler for configuration
// updates. Requires a CostConfigUoWFactory for transactional persistence.
func NewUpdateCostConfigCommandHandler(uowFactory CostConfigUoWFactory) UpdateCostConfigCommandHandler {
	return UpdateCostConfigCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the configuration update. Only admins may change the
// cost model.
func (h UpdateCostConfigCommandHandler) Handle(ctx context.Context, cmd UpdateCostConfigCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.WorkerRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		return errs.NewForbiddenError(
			fmt.Sprintf("worker %s may not change the cost model", actor.Code()))
	}

	if err = uow.CostConfigRepository().Save(ctx, cmd.Config()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
