package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// RemoveLineCommandHandler handles line removals. Removing a line discards
// its recorded actions and re-derives the order status from the remaining
// lines.
type RemoveLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveLineCommandHandler creates a handler for line removals.
// Requires an OrderUoWFactory for transactional persistence.
func NewRemoveLineCommandHandler(uowFactory OrderUoWFactory) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the line removal. Only admins may change an order's
// composition. The line is locked first so a concurrent submission cannot
// record against a line being removed.
func (h RemoveLineCommandHandler) Handle(ctx context.Context, cmd RemoveLineCommand) error {
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

	if err = ord.RemoveLine(cmd.LineID()); err != nil {
		return err
	}

	if err = orderRepo.RemoveLine(ctx, ord, cmd.LineID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
