package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/adapters/out/postgres/outboxrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency for reads that
// happen outside any unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

// UnitOfWorkIntegrationTestSuite verifies that order mutations and their
// outbox events share one transaction: both land together on commit and both
// vanish together on rollback.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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
		&orderrepo.ItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&outboxrepo.EventDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_status_history, outbox_events").Error)
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsFamilyAndEvents() {
	ctx := context.Background()
	family := suite.createTestFamily(2)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	for _, member := range family.All() {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, member))

		events, err := outbox.EventsFor(outbox.EventOrderCreated, member, "customer", time.Now())
		suite.Require().NoError(err)
		suite.Require().NoError(uow.OutboxRepository().Add(ctx, events))
	}

	suite.Require().NoError(uow.Commit(ctx))

	// Parent on two channels, each of two children on three
	suite.Equal(int64(3), suite.count(&orderrepo.OrderDTO{}))
	suite.Equal(int64(8), suite.count(&outboxrepo.EventDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsFamilyAndEvents() {
	ctx := context.Background()
	family := suite.createTestFamily(1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	for _, member := range family.All() {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, member))

		events, err := outbox.EventsFor(outbox.EventOrderCreated, member, "customer", time.Now())
		suite.Require().NoError(err)
		suite.Require().NoError(uow.OutboxRepository().Add(ctx, events))
	}

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.count(&orderrepo.OrderDTO{}))
	suite.Equal(int64(0), suite.count(&outboxrepo.EventDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateInTransaction_VisibleAfterCommitOnly() {
	ctx := context.Background()
	family := suite.createTestFamily(1)

	// Seed the child through its own committed unit of work
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	for _, member := range family.All() {
		suite.Require().NoError(seed.OrderRepository().Add(ctx, member))
	}
	suite.Require().NoError(seed.Commit(ctx))

	child := family.Children[0]
	suite.Require().NoError(child.TransitionTo(order.Preparing, "shop-staff", "", time.Now()))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, child))

	// Reads outside the transaction still see the old status
	outside := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	before, err := outside.Get(ctx, child.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, before.Status())

	suite.Require().NoError(uow.Commit(ctx))

	after, err := outside.Get(ctx, child.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, after.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

// createTestFamily builds a split order family with one basket per shop.
func (suite *UnitOfWorkIntegrationTestSuite) createTestFamily(shopCount int) services.Family {
	customer, err := order.NewCustomer("Bauyrzhan", "+77051234567")
	suite.Require().NoError(err)
	item, err := order.NewItem("Beshbarmak", 1, 2500, nil)
	suite.Require().NoError(err)

	baskets := make([]services.Basket, 0, shopCount)
	for i := 0; i < shopCount; i++ {
		baskets = append(baskets, services.Basket{
			ShopID: kernel.NewUUID(),
			Items:  []order.Item{item},
		})
	}

	splitter, err := services.NewOrderSplitter(700, 500)
	suite.Require().NoError(err)

	family, err := splitter.Split(services.SplitRequest{
		ZoneID:        kernel.NewUUID(),
		TableNumber:   "T3",
		Customer:      customer,
		PaymentMethod: "cash",
		Baskets:       baskets,
		SubmittedAt:   time.Now(),
	})
	suite.Require().NoError(err)
	return family
}

func (suite *UnitOfWorkIntegrationTestSuite) count(model any) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	return count
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
