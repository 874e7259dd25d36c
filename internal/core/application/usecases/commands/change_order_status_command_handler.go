package commands

import (
	"context"
	"fmt"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles explicit order transitions. The
// ledger never starts or cancels an order on its own; both are reserved for
// admins. Any other target status is applied as a direct override.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for explicit order
// transitions. Requires an OrderUoWFactory for transactional persistence.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition. Uses the guarded Start and Cancel
// transitions where they match the request and falls back to an override
// otherwise, so an admin can always repair a stuck order.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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
			fmt.Sprintf("worker %s may not change order status", actor.Code()))
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch {
	case cmd.Status() == order.Cancelled:
		err = ord.Cancel()
	case cmd.Status() == order.InProgress && ord.Status() == order.Fetched:
		err = ord.Start()
	default:
		err = ord.OverrideStatus(cmd.Status())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
