package commands

import (
	"context"
	"fmt"

	"production/internal/pkg/errs"
)

// AddLineCommandHandler handles the business logic for adding a product
// position to an order. Adding a line to a Done order demotes it to
// InProgress, since the new line carries no recorded work yet.
type AddLineCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewAddLineCommandHandler creates a handler for line additions.
// Requires a LedgerUoWFactory because the product reference is verified
// against the catalog before the line is created.
func NewAddLineCommandHandler(uowFactory LedgerUoWFactory) AddLineCommandHandler {
	return AddLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the line addition. Only admins may change an order's
// composition.
func (h AddLineCommandHandler) Handle(ctx context.Context, cmd AddLineCommand) error {
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

	if _, err = uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = ord.AddLine(cmd.LineID(), cmd.ProductID(), cmd.RequiredQuantity()); err != nil {
		return err
	}

	if err = orderRepo.InsertLine(ctx, ord, cmd.LineID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
