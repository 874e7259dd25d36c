package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// ChangeLineQuantityCommandHandler handles required-quantity changes. The
// change competes with concurrent work submissions for the same line, so
// the line is locked exactly like a ledger write: the quota re-validation
// must observe a stable set of recorded actions.
type ChangeLineQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeLineQuantityCommandHandler creates a handler for required-quantity
// changes. Requires an OrderUoWFactory for transactional persistence.
func NewChangeLineQuantityCommandHandler(uowFactory OrderUoWFactory) ChangeLineQuantityCommandHandler {
	return ChangeLineQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the quantity change. Only admins may change an order's
// composition. The status is re-derived afterwards: raising the requirement
// of a complete order reopens it, lowering it can complete the order.
func (h ChangeLineQuantityCommandHandler) Handle(ctx context.Context, cmd ChangeLineQuantityCommand) error {
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
			fmt.Sprintf("worker %s may not change order composition", actor.Code()))
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetByLineIDForUpdate(ctx, cmd.LineID())
	if err != nil {
		return err
	}

	if err = ord.ChangeLineQuantity(cmd.LineID(), cmd.NewQuantity()); err != nil {
		return err
	}

	if err = orderRepo.UpdateLine(ctx, ord, cmd.LineID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
