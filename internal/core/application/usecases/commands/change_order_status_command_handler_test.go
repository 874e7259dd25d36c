package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFetchedOrder(t *testing.T) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(kernel.NewUUID(), nil, "shop", nil, "Alva Nyberg", "")
	require.NoError(t, err)
	return ord
}

func TestChangeOrderStatusCommandHandler_Handle_Start(t *testing.T) {
	ctx := t.Context()

	testOrder := newFetchedOrder(t)
	admin := newTestAdmin(t)

	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), order.InProgress, admin.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, testOrder.Status())
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_Cancel(t *testing.T) {
	ctx := t.Context()

	testOrder, _, _ := newTestOrder(t, 5)
	admin := newTestAdmin(t)

	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), order.Cancelled, admin.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, testOrder.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_NonAdminForbidden(t *testing.T) {
	ctx := t.Context()

	testOrder := newFetchedOrder(t)
	actor := newTestWorker(t, order.StageCutting)

	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), order.InProgress, actor.ID())
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", ctx, actor.ID()).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Fetched, testOrder.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_CancelledStaysCancelled(t *testing.T) {
	ctx := t.Context()

	testOrder, _, _ := newTestOrder(t, 5)
	require.NoError(t, testOrder.Cancel())
	admin := newTestAdmin(t)

	cmd, err := commands.NewChangeOrderStatusCommand(testOrder.ID(), order.Cancelled, admin.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	workerRepo := new(MockWorkerRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkerRepository").Return(workerRepo).Once(),
		workerRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
