package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogRepositoryIntegrationTestSuite provides integration tests for the
// read-only catalog repository using PostgreSQL containers.
type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *catalogrepo.GormCatalogRepository

	zoneID kernel.UUID
	shopID kernel.UUID
	itemID kernel.UUID
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
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
		&catalogrepo.ZoneDTO{},
		&catalogrepo.ShopDTO{},
		&catalogrepo.MenuItemDTO{},
	))
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE zones, shops, menu_items").Error)
	suite.repository = catalogrepo.NewGormCatalogRepository(suite.db)

	suite.zoneID = kernel.NewUUID()
	suite.shopID = kernel.NewUUID()
	suite.itemID = kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&catalogrepo.ZoneDTO{
		ID:     suite.zoneID.Bytes(),
		Name:   "Dostyk Plaza Food Court",
		Active: true,
	}).Error)
	suite.Require().NoError(suite.db.Create(&catalogrepo.ShopDTO{
		ID:     suite.shopID.Bytes(),
		ZoneID: suite.zoneID.Bytes(),
		Name:   "Uyghur Kitchen",
		Active: true,
	}).Error)
	suite.Require().NoError(suite.db.Create(&catalogrepo.MenuItemDTO{
		ID:         suite.itemID.Bytes(),
		ShopID:     suite.shopID.Bytes(),
		Name:       "Lagman",
		PriceCents: 1800,
		Available:  true,
	}).Error)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetZone_ExistingZone_ReturnsZone() {
	zone, err := suite.repository.GetZone(context.Background(), suite.zoneID)
	suite.Require().NoError(err)

	suite.Equal(suite.zoneID, zone.ID)
	suite.Equal("Dostyk Plaza Food Court", zone.Name)
	suite.True(zone.Active)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetZone_UnknownZone_ReturnsNotFoundError() {
	_, err := suite.repository.GetZone(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetShop_ExistingShop_ReturnsShop() {
	shop, err := suite.repository.GetShop(context.Background(), suite.shopID)
	suite.Require().NoError(err)

	suite.Equal(suite.shopID, shop.ID)
	suite.Equal(suite.zoneID, shop.ZoneID)
	suite.Equal("Uyghur Kitchen", shop.Name)
	suite.True(shop.Active)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetShop_UnknownShop_ReturnsNotFoundError() {
	_, err := suite.repository.GetShop(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetItem_ExistingItem_ReturnsItem() {
	item, err := suite.repository.GetItem(context.Background(), suite.itemID)
	suite.Require().NoError(err)

	suite.Equal(suite.itemID, item.ID)
	suite.Equal(suite.shopID, item.ShopID)
	suite.Equal("Lagman", item.Name)
	suite.Equal(int64(1800), item.PriceCents)
	suite.True(item.Available)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetItem_UnknownItem_ReturnsNotFoundError() {
	_, err := suite.repository.GetItem(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGetItem_UnavailableItem_StillReturned() {
	unavailableID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&catalogrepo.MenuItemDTO{
		ID:         unavailableID.Bytes(),
		ShopID:     suite.shopID.Bytes(),
		Name:       "Seasonal Manty",
		PriceCents: 1400,
		Available:  false,
	}).Error)

	// Availability is a business decision for the caller, not a filter here
	item, err := suite.repository.GetItem(context.Background(), unavailableID)
	suite.Require().NoError(err)
	suite.False(item.Available)
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}
