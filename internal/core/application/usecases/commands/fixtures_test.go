package commands_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/product"
	"production/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, stages ...order.Stage) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), "w-100", "Mara", "Lindgren", worker.RoleWorker, stages)
	require.NoError(t, err)
	return w
}

func newTestAdmin(t *testing.T) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), "adm-1", "Ivo", "Berg", worker.RoleAdmin, nil)
	require.NoError(t, err)
	return w
}

// newTestOrder builds an InProgress order with a single line requiring the
// given quantity. Returns the order together with the line and product
// identifiers the test will target.
func newTestOrder(t *testing.T, requiredQuantity int) (*order.Order, kernel.UUID, kernel.UUID) {
	t.Helper()

	ord, err := order.NewOrder(kernel.NewUUID(), nil, "shop", nil, "Alva Nyberg", "")
	require.NoError(t, err)

	lineID := kernel.NewUUID()
	productID := kernel.NewUUID()
	_, err = ord.AddLine(lineID, productID, requiredQuantity)
	require.NoError(t, err)

	require.NoError(t, ord.Start())
	return ord, lineID, productID
}

func newTestProduct(t *testing.T, id kernel.UUID) *product.Product {
	t.Helper()

	width, height := 100, 100
	edgeClass := product.EdgeO5
	p, err := product.NewProduct(id, "TBL-140", "linen", "herringbone",
		product.Rectangular, &width, &height, nil, &edgeClass)
	require.NoError(t, err)
	return p
}
