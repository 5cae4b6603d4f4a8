package postgres_test

import (
	"context"
	"testing"
	"time"

	"foodbot/internal/adapters/out/postgres"
	"foodbot/internal/adapters/out/postgres/courierrepo"
	"foodbot/internal/adapters/out/postgres/orderrepo"
	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the
// GORM unit of work against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, couriers").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer uow.Rollback(ctx)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(1)))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(1)))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsNoOp() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(1)))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Rollback(ctx))
	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_DoesNotNest() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(1)))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepository_AtomicAcrossAggregates() {
	ctx := context.Background()

	// Seed a delivered order and its courier in one transaction
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer uow.Rollback(ctx)

	testOrder := suite.createTestOrder(1)
	suite.Require().NoError(testOrder.Publish())
	suite.Require().NoError(testOrder.Accept(7))
	suite.Require().NoError(testOrder.Deliver(7))

	testCourier := suite.createTestCourier(7)
	suite.Require().NoError(testCourier.CreditDelivery(1, testOrder.Total(), time.Now().UTC()))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))
	suite.Require().NoError(uow.Commit(ctx))

	retrievedOrder, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, retrievedOrder.Status())

	retrievedCourier, err := courierrepo.NewGormCourierRepository(suite.db).Get(ctx, 7)
	suite.Require().NoError(err)
	suite.Equal(testOrder.Total(), retrievedCourier.Ledger().Total())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepository_RollbackCoversBoth() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder(1)))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, suite.createTestCourier(7)))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)

	var courierCount int64
	suite.Require().NoError(suite.db.Model(&courierrepo.CourierDTO{}).Count(&courierCount).Error)
	suite.Equal(int64(0), courierCount)
}

// TestConcurrentTransitions_SerializeOnRowLock runs a cancel and a publish
// against the same pending order from two transactions. The second Get
// blocks on the row lock until the cancel commits, so the publish guard
// sees Canceled and the order never leaves its terminal state.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentTransitions_SerializeOnRowLock() {
	ctx := context.Background()

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, suite.createTestOrder(21)))
	suite.Require().NoError(seed.Commit(ctx))

	cancelTx := suite.factory.Create()
	suite.Require().NoError(cancelTx.Begin(ctx))
	locked, err := cancelTx.OrderRepository().Get(ctx, 21)
	suite.Require().NoError(err)

	publishDone := make(chan error, 1)
	go func() {
		publishTx := suite.factory.Create()
		if err := publishTx.Begin(ctx); err != nil {
			publishDone <- err
			return
		}
		defer publishTx.Rollback(ctx)

		// Blocks here until the cancel transaction commits.
		o, err := publishTx.OrderRepository().Get(ctx, 21)
		if err != nil {
			publishDone <- err
			return
		}
		if err := o.Publish(); err != nil {
			publishDone <- err
			return
		}
		if err := publishTx.OrderRepository().Update(ctx, o); err != nil {
			publishDone <- err
			return
		}
		publishDone <- publishTx.Commit(ctx)
	}()

	// Give the publish transaction time to queue up behind the lock.
	time.Sleep(200 * time.Millisecond)

	suite.Require().NoError(locked.Cancel())
	suite.Require().NoError(cancelTx.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(cancelTx.Commit(ctx))

	suite.Require().ErrorIs(<-publishDone, order.ErrStatusConflict)

	final, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, 21)
	suite.Require().NoError(err)
	suite.Equal(order.Canceled, final.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(number int) *order.Order {
	item, err := order.NewItem("Palov", 2)
	suite.Require().NoError(err)

	phone, err := kernel.NewPhone("+998901234567")
	suite.Require().NoError(err)
	location, err := kernel.NewRawLocation("Chilonzor, 5")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		number, 100,
		[]order.Item{item}, 85000,
		phone, location,
		order.PaymentCash, "41523",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCourier(chatID int64) *courier.Courier {
	phone, err := kernel.NewPhone("+998935551122")
	suite.Require().NoError(err)

	testCourier, err := courier.NewCourier(chatID, "Bekzod", phone, time.Now().UTC())
	suite.Require().NoError(err)
	return testCourier
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
