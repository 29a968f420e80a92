package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
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

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusHistoryDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ZoneFamily_RoundTrip() {
	ctx := context.Background()
	family := suite.createTestFamily(2)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	for _, member := range family.All() {
		suite.Require().NoError(suite.repository.Add(ctx, member))
	}

	suite.assertOrderCount(3)

	retrieved, err := suite.repository.Get(ctx, family.Parent.ID())
	suite.Require().NoError(err)

	suite.Equal(family.Parent.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(order.TypeZoneMain, retrieved.Type())
	suite.Equal(family.Parent.ZoneID(), retrieved.ZoneID())
	suite.Equal("T7", retrieved.TableNumber())
	suite.Equal("Aigerim", retrieved.Customer().Name())
	suite.Equal("+77010001122", retrieved.Customer().Phone())
	suite.Equal("card", retrieved.PaymentMethod())
	suite.Equal(family.Parent.Pricing().Total(), retrieved.Pricing().Total())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(1, retrieved.Version())
	suite.Nil(retrieved.ParentID())
	suite.Nil(retrieved.ShopID())

	// Items come back in submitted order with modifiers intact
	items := retrieved.Items()
	suite.Require().Len(items, 3)
	suite.Equal("Lagman", items[0].Name())
	suite.Equal([]string{"extra spicy"}, items[0].Modifiers())
	suite.Equal("Plov", items[1].Name())
	suite.Equal("Plov", items[2].Name())

	// The placement history entry survives the round trip
	history := retrieved.History()
	suite.Require().Len(history, 1)
	suite.Equal(order.Pending, history[0].Status())
	suite.Equal("customer", history[0].Actor())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_ChildOrder_ReturnsChild() {
	ctx := context.Background()
	family := suite.createTestFamily(2)
	suite.addFamily(ctx, family)

	child := family.Children[1]
	retrieved, err := suite.repository.GetByNumber(ctx, child.OrderNumber())
	suite.Require().NoError(err)

	suite.Equal(child.ID(), retrieved.ID())
	suite.Equal(order.TypeZoneShop, retrieved.Type())
	suite.Require().NotNil(retrieved.ParentID())
	suite.Equal(family.Parent.ID(), *retrieved.ParentID())
	suite.Equal(2, retrieved.Trace().Sequence())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_UnknownNumber_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByNumber(ctx, "FC-0000000000")

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetChildren_ReturnsSequenceOrder() {
	ctx := context.Background()
	family := suite.createTestFamily(3)

	// Insert children out of order; the read must still come back by sequence
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	suite.Require().NoError(suite.repository.Add(ctx, family.Parent))
	suite.Require().NoError(suite.repository.Add(ctx, family.Children[2]))
	suite.Require().NoError(suite.repository.Add(ctx, family.Children[0]))
	suite.Require().NoError(suite.repository.Add(ctx, family.Children[1]))

	children, err := suite.repository.GetChildren(ctx, family.Parent.ID())
	suite.Require().NoError(err)

	suite.Require().Len(children, 3)
	for i, child := range children {
		suite.Equal(i+1, child.Trace().Sequence())
		suite.Equal(family.Children[i].ID(), child.ID())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetChildren_NoChildren_ReturnsEmptySlice() {
	ctx := context.Background()
	family := suite.createTestFamily(1)
	suite.addFamily(ctx, family)

	children, err := suite.repository.GetChildren(ctx, family.Children[0].ID())
	suite.Require().NoError(err)
	suite.Empty(children)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Transition_PersistsStatusAndHistory() {
	ctx := context.Background()
	family := suite.createTestFamily(1)
	suite.addFamily(ctx, family)

	child := family.Children[0]
	suite.Require().NoError(child.TransitionTo(order.Preparing, "shop-staff", "on the wok", time.Now()))

	suite.tracker.On("TrackAggregate", child.ID(), child).Once()
	suite.Require().NoError(suite.repository.Update(ctx, child))

	// Version moves with the stored row after a successful write
	suite.Equal(2, child.Version())

	retrieved, err := suite.repository.Get(ctx, child.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, retrieved.Status())
	suite.Equal(2, retrieved.Version())

	history := retrieved.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Preparing, history[1].Status())
	suite.Equal("shop-staff", history[1].Actor())
	suite.Equal("on the wok", history[1].Notes())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrentModification() {
	ctx := context.Background()
	family := suite.createTestFamily(1)
	suite.addFamily(ctx, family)

	child := family.Children[0]

	// Two staff terminals read the same row
	stale, err := suite.repository.Get(ctx, child.ID())
	suite.Require().NoError(err)

	// First writer wins
	suite.Require().NoError(child.TransitionTo(order.Preparing, "terminal-1", "", time.Now()))
	suite.tracker.On("TrackAggregate", child.ID(), child).Once()
	suite.Require().NoError(suite.repository.Update(ctx, child))

	// Second writer loses on the version check
	suite.Require().NoError(stale.TransitionTo(order.Cancelled, "terminal-2", "", time.Now()))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	// The losing write changed nothing
	retrieved, err := suite.repository.Get(ctx, child.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsConcurrentModification() {
	ctx := context.Background()
	family := suite.createTestFamily(1)

	err := suite.repository.Update(ctx, family.Children[0])

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestFamily builds a split order family with one basket per shop.
func (suite *OrderRepositoryIntegrationTestSuite) createTestFamily(shopCount int) services.Family {
	customer, err := order.NewCustomer("Aigerim", "+77010001122")
	suite.Require().NoError(err)

	lagman, err := order.NewItem("Lagman", 1, 1800, []string{"extra spicy"})
	suite.Require().NoError(err)
	plov, err := order.NewItem("Plov", 1, 1600, nil)
	suite.Require().NoError(err)

	baskets := make([]services.Basket, 0, shopCount)
	for i := 0; i < shopCount; i++ {
		items := []order.Item{plov}
		if i == 0 {
			items = []order.Item{lagman, plov}
		}
		baskets = append(baskets, services.Basket{ShopID: kernel.NewUUID(), Items: items})
	}

	splitter, err := services.NewOrderSplitter(700, 500)
	suite.Require().NoError(err)

	family, err := splitter.Split(services.SplitRequest{
		ZoneID:        kernel.NewUUID(),
		TableNumber:   "T7",
		Customer:      customer,
		PaymentMethod: "card",
		Baskets:       baskets,
		SubmittedAt:   time.Now(),
	})
	suite.Require().NoError(err)
	return family
}

// addFamily persists every member of the family.
func (suite *OrderRepositoryIntegrationTestSuite) addFamily(ctx context.Context, family services.Family) {
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).
		Times(len(family.All()))
	for _, member := range family.All() {
		suite.Require().NoError(suite.repository.Add(ctx, member))
	}
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
