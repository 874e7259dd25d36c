package commands

import (
	"context"
	"fmt"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for manual order
// creation. Orders created here carry no external reference and are never
// touched by the feed synchronization.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Only admins may create
// orders manually; the order is persisted in Fetched status.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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
			fmt.Sprintf("worker %s may not create orders", actor.Code()))
	}

	ord, err := order.NewOrder(
		cmd.OrderID(), nil, cmd.Source(), cmd.ExpectedShipmentDate(),
		cmd.CustomerName(), cmd.Company())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
