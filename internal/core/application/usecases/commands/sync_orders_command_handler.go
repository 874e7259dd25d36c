package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/product"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// SyncOrdersCommandHandler merges orders pulled from the external
// order-management system into the local store. Products are upserted by
// SKU, orders are matched by their external reference. The local ledger is
// authoritative: the sync never touches recorded actions, never changes a
// derived status and never lowers a required quantity below recorded work.
type SyncOrdersCommandHandler struct {
	feed       ports.OrderFeed
	uowFactory SyncUoWFactory
}

// NewSyncOrdersCommandHandler creates a handler for order synchronization.
// Requires the order feed port and a SyncUoWFactory for transactional
// persistence.
func NewSyncOrdersCommandHandler(
	feed ports.OrderFeed,
	uowFactory SyncUoWFactory,
) SyncOrdersCommandHandler {
	return SyncOrdersCommandHandler{
		feed:       feed,
		uowFactory: uowFactory,
	}
}

// Handle processes the synchronization. All pulled orders are merged in one
// transaction: a failed pull or merge leaves the local store untouched.
func (h SyncOrdersCommandHandler) Handle(ctx context.Context, cmd SyncOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	feedOrders, err := h.feed.FetchOrders(ctx, cmd.Since())
	if err != nil {
		return err
	}
	if len(feedOrders) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, feedOrder := range feedOrders {
		if err = h.mergeOrder(ctx, uow, feedOrder); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h SyncOrdersCommandHandler) mergeOrder(
	ctx context.Context,
	uow SyncUoW,
	feedOrder ports.FeedOrder,
) error {
	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.GetByExternalRef(ctx, feedOrder.ExternalRef)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return h.createOrder(ctx, uow, feedOrder)
	case err != nil:
		return err
	}

	ord.SetExpectedShipmentDate(feedOrder.ExpectedShipmentDate)
	ord.SetCustomer(feedOrder.CustomerName, feedOrder.Company)
	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	for _, feedLine := range feedOrder.Lines {
		if err = h.mergeLine(ctx, uow, ord, feedLine); err != nil {
			return err
		}
	}

	return nil
}

func (h SyncOrdersCommandHandler) createOrder(
	ctx context.Context,
	uow SyncUoW,
	feedOrder ports.FeedOrder,
) error {
	externalRef := feedOrder.ExternalRef
	ord, err := order.NewOrder(
		kernel.NewUUID(), &externalRef, feedOrder.Source,
		feedOrder.ExpectedShipmentDate, feedOrder.CustomerName, feedOrder.Company)
	if err != nil {
		return err
	}

	for _, feedLine := range feedOrder.Lines {
		prod, err := h.ensureProduct(ctx, uow, feedLine)
		if err != nil {
			return err
		}
		if _, err = ord.AddLine(kernel.NewUUID(), prod.ID(), feedLine.Quantity); err != nil {
			return err
		}
	}

	return uow.OrderRepository().Add(ctx, ord)
}

func (h SyncOrdersCommandHandler) mergeLine(
	ctx context.Context,
	uow SyncUoW,
	ord *order.Order,
	feedLine ports.FeedLine,
) error {
	prod, err := h.ensureProduct(ctx, uow, feedLine)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	for _, line := range ord.Lines() {
		if !line.ProductID().IsEqual(prod.ID()) {
			continue
		}
		if line.RequiredQuantity() == feedLine.Quantity {
			return nil
		}

		// Re-read the line under its exclusive lock so the quota check
		// runs against the committed ledger, not the unlocked snapshot
		// the merge started from.
		locked, err := orderRepo.GetByLineIDForUpdate(ctx, line.ID())
		if err != nil {
			return err
		}

		err = locked.ChangeLineQuantity(line.ID(), feedLine.Quantity)
		// Recorded work wins over the feed: a quantity the ledger has
		// already outgrown is kept as is.
		if errors.Is(err, errs.ErrQuotaExceeded) {
			return nil
		}
		if err != nil {
			return err
		}
		return orderRepo.UpdateLine(ctx, locked, line.ID())
	}

	lineID := kernel.NewUUID()
	if _, err = ord.AddLine(lineID, prod.ID(), feedLine.Quantity); err != nil {
		return err
	}
	return orderRepo.InsertLine(ctx, ord, lineID)
}

// ensureProduct resolves the feed line's product by SKU, creating a catalog
// entry when the SKU is seen for the first time.
func (h SyncOrdersCommandHandler) ensureProduct(
	ctx context.Context,
	uow SyncUoW,
	feedLine ports.FeedLine,
) (*product.Product, error) {
	productRepo := uow.ProductRepository()

	prod, err := productRepo.GetBySKU(ctx, feedLine.SKU)
	if err == nil {
		return prod, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	shape, err := product.ShapeFromString(feedLine.Shape)
	if err != nil {
		return nil, err
	}

	var edgeClass *product.EdgeClass
	if feedLine.EdgeClass != nil {
		class, err := product.EdgeClassFromString(*feedLine.EdgeClass)
		if err != nil {
			return nil, err
		}
		edgeClass = &class
	}

	prod, err = product.NewProduct(
		kernel.NewUUID(), feedLine.SKU, feedLine.Fabric, feedLine.Pattern,
		shape, feedLine.Width, feedLine.Height, feedLine.Diameter, edgeClass)
	if err != nil {
		return nil, err
	}

	if err = productRepo.Add(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}
