package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// DeleteActionCommandHandler handles the business logic for deleting a
// recorded action. Workers may delete their own actions; admins may delete
// anyone's. Removing work from a complete line reopens the order.
type DeleteActionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteActionCommandHandler creates a handler for action deletions.
// Requires an OrderUoWFactory for transactional persistence.
func NewDeleteActionCommandHandler(uowFactory OrderUoWFactory) DeleteActionCommandHandler {
	return DeleteActionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion. Locks the owning line for the duration of
// the transaction so the status recomputation observes a stable ledger.
func (h DeleteActionCommandHandler) Handle(ctx context.Context, cmd DeleteActionCommand) error {
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

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetByActionIDForUpdate(ctx, cmd.ActionID())
	if err != nil {
		return err
	}

	if err = ensureLedgerOpen(ord, actor); err != nil {
		return err
	}

	line, action, err := ord.FindAction(cmd.ActionID())
	if err != nil {
		return err
	}

	if !actor.CanTouchAction(action.ActorID()) {
		return errs.NewForbiddenError(
			fmt.Sprintf("worker %s may not delete actions of other workers", actor.Code()))
	}

	if err = ord.RemoveAction(cmd.ActionID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateLine(ctx, ord, line.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
