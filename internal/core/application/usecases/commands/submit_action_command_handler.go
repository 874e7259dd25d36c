package commands

import (
	"context"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/worker"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

// ActionResult carries the recorded action back to the caller: the snapshot
// cost, the actor's display name and the order status derived after the
// mutation.
type ActionResult struct {
	ID          kernel.UUID
	LineID      kernel.UUID
	OrderID     kernel.UUID
	Stage       order.Stage
	Quantity    int
	Cost        float64
	ActorID     kernel.UUID
	ActorName   string
	Timestamp   time.Time
	OrderStatus order.Status
}

// SubmitActionCommandHandler handles the business logic for recording stage
// work. The handler resolves the actor and applies the stage-capability
// policy before any lock is taken; only then does it lock the line, price
// the action and append it to the ledger.
//
// Example:
//
//	handler := NewSubmitActionCommandHandler(uowFactory)
//	cmd, _ := NewSubmitActionCommand(lineID, order.StageSewing, 3, workerID)
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrQuotaExceeded):
//	    log.Println("Stage quota already filled")
//	case errors.Is(err, errs.ErrContention):
//	    log.Println("Line is busy, retry")
//	case err != nil:
//	    log.Printf("Submission failed: %v", err)
//	default:
//	    log.Printf("Recorded action %s", result.ID)
//	}
type SubmitActionCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewSubmitActionCommandHandler creates a handler for work submissions.
// Requires a LedgerUoWFactory for transactional persistence.
func NewSubmitActionCommandHandler(uowFactory LedgerUoWFactory) SubmitActionCommandHandler {
	return SubmitActionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the submission. Locks the targeted line for the duration
// of the transaction so the quota check and the status recomputation observe
// a stable ledger. Returns a QuotaExceeded error when the stage's recorded
// total would exceed the line's requirement and a Contention error when the
// line lock could not be acquired in time.
func (h SubmitActionCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitActionCommand,
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

	actor, err := uow.WorkerRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return ActionResult{}, err
	}

	if !actor.CanPerform(cmd.Stage()) {
		return ActionResult{}, errs.NewForbiddenError(
			fmt.Sprintf("worker %s may not perform stage %s", actor.Code(), cmd.Stage()))
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetByLineIDForUpdate(ctx, cmd.LineID())
	if err != nil {
		return ActionResult{}, err
	}

	if err = ensureLedgerOpen(ord, actor); err != nil {
		return ActionResult{}, err
	}

	line, err := ord.LineByID(cmd.LineID())
	if err != nil {
		return ActionResult{}, err
	}

	cost, err := priceAction(ctx, uow, cmd.Stage(), line.ProductID(), cmd.Quantity())
	if err != nil {
		return ActionResult{}, err
	}

	action, err := ord.RecordAction(
		cmd.LineID(), kernel.NewUUID(), cmd.Stage(), cmd.Quantity(), cost, cmd.ActorID())
	if err != nil {
		return ActionResult{}, err
	}

	if err = orderRepo.UpdateLine(ctx, ord, cmd.LineID()); err != nil {
		return ActionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ActionResult{}, err
	}

	return newActionResult(ord, action, actor), nil
}

// ensureLedgerOpen applies the order-status policy for ledger mutations.
// Cancelled orders never accept ledger changes. Orders still in Fetched
// accept them from admins only; regular workers must wait until the order
// is started.
func ensureLedgerOpen(ord *order.Order, actor *worker.Worker) error {
	switch ord.Status() {
	case order.Cancelled:
		return errs.NewForbiddenError(
			fmt.Sprintf("order %s is cancelled", ord.ID()))
	case order.Fetched:
		if !actor.IsAdmin() {
			return errs.NewForbiddenError(
				fmt.Sprintf("order %s has not been started", ord.ID()))
		}
	}
	return nil
}

// priceAction resolves the product and the current cost-model configuration
// and returns the snapshot cost for the work being recorded or amended.
func priceAction(
	ctx context.Context,
	uow LedgerUoW,
	stage order.Stage,
	productID kernel.UUID,
	quantity int,
) (float64, error) {
	prod, err := uow.ProductRepository().Get(ctx, productID)
	if err != nil {
		return 0, err
	}

	cfg, err := uow.CostConfigRepository().Get(ctx)
	if err != nil {
		return 0, err
	}

	return services.NewCostCalculator().Calculate(stage, prod, quantity, cfg)
}

func newActionResult(ord *order.Order, action *order.Action, actor *worker.Worker) ActionResult {
	return ActionResult{
		ID:          action.ID(),
		LineID:      action.LineID(),
		OrderID:     ord.ID(),
		Stage:       action.Stage(),
		Quantity:    action.Quantity(),
		Cost:        action.Cost(),
		ActorID:     action.ActorID(),
		ActorName:   actor.Name(),
		Timestamp:   action.Timestamp(),
		OrderStatus: ord.Status(),
	}
}
