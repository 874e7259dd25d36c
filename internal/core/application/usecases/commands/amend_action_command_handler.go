package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// AmendActionCommandHandler handles the business logic for amending a
// recorded action. Workers may amend their own actions; admins may amend
// anyone's. The quota is re-validated with the amended action excluded from
// the stage total, and the cost is re-priced at the current configuration.
type AmendActionCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewAmendActionCommandHandler creates a handler for action amendments.
// Requires a LedgerUoWFactory for transactional persistence.
func NewAmendActionCommandHandler(uowFactory LedgerUoWFactory) AmendActionCommandHandler {
	return AmendActionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the amendment. Locks the owning line for the duration of
// the transaction, then re-validates ownership, the order-status policy and
// the stage quota before applying the change.
func (h AmendActionCommandHandler) Handle(
	ctx context.Context,
	cmd AmendActionCommand,
) (ActionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ActionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ActionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workerRepo := uow.WorkerRepository()
	actor, err := workerRepo.Get(ctx, cmd.ActorID())
	if err != nil {
		return ActionResult{}, err
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetByActionIDForUpdate(ctx, cmd.ActionID())
	if err != nil {
		return ActionResult{}, err
	}

	if err = ensureLedgerOpen(ord, actor); err != nil {
		return ActionResult{}, err
	}

	line, action, err := ord.FindAction(cmd.ActionID())
	if err != nil {
		return ActionResult{}, err
	}

	if !actor.CanTouchAction(action.ActorID()) {
		return ActionResult{}, errs.NewForbiddenError(
			fmt.Sprintf("worker %s may not amend actions of other workers", actor.Code()))
	}

	cost, err := priceAction(ctx, uow, action.Stage(), line.ProductID(), cmd.NewQuantity())
	if err != nil {
		return ActionResult{}, err
	}

	action, err = ord.AmendAction(cmd.ActionID(), cmd.NewQuantity(), cost)
	if err != nil {
		return ActionResult{}, err
	}

	owner := actor
	if !action.ActorID().IsEqual(actor.ID()) {
		if owner, err = workerRepo.Get(ctx, action.ActorID()); err != nil {
			return ActionResult{}, err
		}
	}

	if err = orderRepo.UpdateLine(ctx, ord, line.ID()); err != nil {
		return ActionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ActionResult{}, err
	}

	return newActionResult(ord, action, owner), nil
}
