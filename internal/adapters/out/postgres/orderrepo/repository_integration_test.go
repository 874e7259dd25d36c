package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.ActionDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// createStartedOrder persists an in-progress order with one line and
// returns it together with the line id.
func (suite *OrderRepositoryIntegrationTestSuite) createStartedOrder(requiredQuantity int) (*order.Order, kernel.UUID) {
	ord, err := order.NewOrder(kernel.NewUUID(), nil, "shop", nil, "Alva Nyberg", "")
	suite.Require().NoError(err)

	lineID := kernel.NewUUID()
	_, err = ord.AddLine(lineID, kernel.NewUUID(), requiredQuantity)
	suite.Require().NoError(err)
	suite.Require().NoError(ord.Start())

	suite.Require().NoError(suite.repository.Add(context.Background(), ord))
	return ord, lineID
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsLinesAndActions() {
	ctx := context.Background()

	ref := int64(4711)
	shipment := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	ord, err := order.NewOrder(kernel.NewUUID(), &ref, "webshop", &shipment, "Alva Nyberg", "Nyberg Interiors")
	suite.Require().NoError(err)

	lineID := kernel.NewUUID()
	_, err = ord.AddLine(lineID, kernel.NewUUID(), 5)
	suite.Require().NoError(err)
	suite.Require().NoError(ord.Start())

	actorID := kernel.NewUUID()
	_, err = ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 3, 6.98, actorID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, ord))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)

	suite.Equal(ref, *retrieved.ExternalRef())
	suite.Equal("webshop", retrieved.Source())
	suite.Equal("Nyberg Interiors", retrieved.Company())
	suite.Equal(order.InProgress, retrieved.Status())
	suite.Require().Len(retrieved.Lines(), 1)

	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Equal(5, line.RequiredQuantity())
	suite.Equal(3, line.StageTotal(order.StageCutting))

	actions := line.Actions()
	suite.Require().Len(actions, 1)
	suite.Equal(6.98, actions[0].Cost())
	suite.Equal(actorID, actions[0].ActorID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByExternalRef() {
	ctx := context.Background()

	ref := int64(90210)
	ord, err := order.NewOrder(kernel.NewUUID(), &ref, "webshop", nil, "Alva Nyberg", "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, ord))

	retrieved, err := suite.repository.GetByExternalRef(ctx, ref)
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(ord))

	_, err = suite.repository.GetByExternalRef(ctx, 99999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByLineID() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	retrieved, err := suite.repository.GetByLineID(ctx, lineID)
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(ord))

	_, err = suite.repository.GetByLineID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateLine_PersistsNewActions() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	_, err := ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 5, 11.63, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)

	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Equal(5, line.StageTotal(order.StageCutting))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateLine_ReconcilesRemovedActions() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	action, err := ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 5, 11.63, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	suite.Require().NoError(ord.RemoveAction(action.ID()))
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)

	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Empty(line.Actions())

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ActionDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRemoveLine_DeletesLineAndCascadesActions() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	_, err := ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 2, 4.65, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	suite.Require().NoError(ord.RemoveLine(lineID))
	suite.Require().NoError(suite.repository.RemoveLine(ctx, ord, lineID))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Empty(retrieved.Lines())

	// Deleting the line cascades to its actions.
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ActionDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestInsertLine_PersistsAddedLine() {
	ctx := context.Background()
	ord, _ := suite.createStartedOrder(5)

	lineID := kernel.NewUUID()
	_, err := ord.AddLine(lineID, kernel.NewUUID(), 3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.InsertLine(ctx, ord, lineID))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Lines(), 2)

	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Equal(3, line.RequiredQuantity())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateLine_PersistsStatusAndQuantityChanges() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(2)

	for _, stage := range order.Stages() {
		_, err := ord.RecordAction(lineID, kernel.NewUUID(), stage, 2, 1.0, kernel.NewUUID())
		suite.Require().NoError(err)
	}
	suite.Require().Equal(order.Done, ord.Status())
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Done, retrieved.Status())

	suite.Require().NoError(retrieved.ChangeLineQuantity(lineID, 4))
	suite.Require().Equal(order.InProgress, retrieved.Status())
	suite.Require().NoError(suite.repository.UpdateLine(ctx, retrieved, lineID))

	reloaded, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, reloaded.Status())

	line, err := reloaded.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Equal(4, line.RequiredQuantity())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsHeaderOnly() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	// A header update must leave line and action rows alone, even when
	// the in-memory aggregate carries unpersisted ledger changes.
	_, err := ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 2, 4.65, kernel.NewUUID())
	suite.Require().NoError(err)
	ord.SetCustomer("Alva Nyberg", "Nyberg Interiors")
	suite.Require().NoError(suite.repository.Update(ctx, ord))

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal("Nyberg Interiors", retrieved.Company())

	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Empty(line.Actions())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ord, err := order.NewOrder(kernel.NewUUID(), nil, "", nil, "Alva Nyberg", "")
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), ord)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByActionIDForUpdate() {
	ctx := context.Background()
	ord, lineID := suite.createStartedOrder(5)

	action, err := ord.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 2, 4.65, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateLine(ctx, ord, lineID))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	retrieved, err := txRepo.GetByActionIDForUpdate(ctx, action.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEqual(ord))

	_, err = txRepo.GetByActionIDForUpdate(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestGetByLineIDForUpdate_SerializesConcurrentSubmissions drives two
// transactions at the same line: the second blocks on the lock until the
// first commits, then sees the committed work and fails the quota check.
// Exactly one of two competing submissions for the last remaining units
// wins.
func (suite *OrderRepositoryIntegrationTestSuite) TestGetByLineIDForUpdate_SerializesConcurrentSubmissions() {
	ctx := context.Background()
	_, lineID := suite.createStartedOrder(5)

	tx1 := suite.db.Begin()
	suite.Require().NoError(tx1.Error)
	repo1 := orderrepo.NewGormOrderRepository(tx1, suite.tracker)

	ord1, err := repo1.GetByLineIDForUpdate(ctx, lineID)
	suite.Require().NoError(err)

	secondDone := make(chan error, 1)
	go func() {
		tx2 := suite.db.Begin()
		if tx2.Error != nil {
			secondDone <- tx2.Error
			return
		}
		defer tx2.Rollback()

		repo2 := orderrepo.NewGormOrderRepository(tx2, suite.tracker)

		// Blocks here until tx1 commits.
		ord2, lockErr := repo2.GetByLineIDForUpdate(ctx, lineID)
		if lockErr != nil {
			secondDone <- lockErr
			return
		}

		_, recordErr := ord2.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 3, 6.98, kernel.NewUUID())
		secondDone <- recordErr
	}()

	// Give the competing transaction time to queue on the lock, then
	// consume the full quota and commit.
	time.Sleep(500 * time.Millisecond)

	_, err = ord1.RecordAction(lineID, kernel.NewUUID(), order.StageCutting, 5, 11.63, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(repo1.UpdateLine(ctx, ord1, lineID))
	suite.Require().NoError(tx1.Commit().Error)

	select {
	case err = <-secondDone:
		suite.Require().ErrorIs(err, errs.ErrQuotaExceeded)
	case <-time.After(10 * time.Second):
		suite.Fail("second transaction never finished")
	}

	// Only the winner's action is recorded.
	retrieved, err := suite.repository.Get(ctx, suiteOrderID(suite, lineID))
	suite.Require().NoError(err)
	line, err := retrieved.LineByID(lineID)
	suite.Require().NoError(err)
	suite.Equal(5, line.StageTotal(order.StageCutting))
	suite.Len(line.Actions(), 1)
}

// TestUpdateLine_SiblingLinesDoNotClobberEachOther interleaves two
// transactions on different lines of the same order: the first holds line
// A's lock while the second locks line B, records work there and commits.
// Line locks are per-line, so the second must not block, and the first's
// later write must not delete the work the second committed mid-flight.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateLine_SiblingLinesDoNotClobberEachOther() {
	ctx := context.Background()

	ord, err := order.NewOrder(kernel.NewUUID(), nil, "shop", nil, "Alva Nyberg", "")
	suite.Require().NoError(err)
	lineA := kernel.NewUUID()
	lineB := kernel.NewUUID()
	_, err = ord.AddLine(lineA, kernel.NewUUID(), 5)
	suite.Require().NoError(err)
	_, err = ord.AddLine(lineB, kernel.NewUUID(), 5)
	suite.Require().NoError(err)
	suite.Require().NoError(ord.Start())
	suite.Require().NoError(suite.repository.Add(ctx, ord))

	tx1 := suite.db.Begin()
	suite.Require().NoError(tx1.Error)
	defer tx1.Rollback()
	repo1 := orderrepo.NewGormOrderRepository(tx1, suite.tracker)

	ordA, err := repo1.GetByLineIDForUpdate(ctx, lineA)
	suite.Require().NoError(err)
	_, err = ordA.RecordAction(lineA, kernel.NewUUID(), order.StageCutting, 2, 4.65, kernel.NewUUID())
	suite.Require().NoError(err)

	// While tx1 still holds line A, a second transaction works line B to
	// completion. Locking line B must not wait on tx1 (a broader lock
	// scope would trip the bounded lock wait here).
	tx2 := suite.db.Begin()
	suite.Require().NoError(tx2.Error)
	repo2 := orderrepo.NewGormOrderRepository(tx2, suite.tracker)

	ordB, err := repo2.GetByLineIDForUpdate(ctx, lineB)
	suite.Require().NoError(err)
	_, err = ordB.RecordAction(lineB, kernel.NewUUID(), order.StageCutting, 3, 6.98, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(repo2.UpdateLine(ctx, ordB, lineB))
	suite.Require().NoError(tx2.Commit().Error)

	// tx1 persists line A from its pre-commit snapshot. Line B's committed
	// action must survive this write.
	suite.Require().NoError(repo1.UpdateLine(ctx, ordA, lineA))
	suite.Require().NoError(tx1.Commit().Error)

	retrieved, err := suite.repository.Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrieved.Status())

	la, err := retrieved.LineByID(lineA)
	suite.Require().NoError(err)
	suite.Equal(2, la.StageTotal(order.StageCutting))
	suite.Len(la.Actions(), 1)

	lb, err := retrieved.LineByID(lineB)
	suite.Require().NoError(err)
	suite.Equal(3, lb.StageTotal(order.StageCutting))
	suite.Len(lb.Actions(), 1)
}

func suiteOrderID(suite *OrderRepositoryIntegrationTestSuite, lineID kernel.UUID) kernel.UUID {
	ord, err := suite.repository.GetByLineID(context.Background(), lineID)
	suite.Require().NoError(err)
	return ord.ID()
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
