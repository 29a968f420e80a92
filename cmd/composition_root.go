package cmd

import (
	"log/slog"

	"foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/adapters/out/redis/eventbus"
	"foodcourt/internal/adapters/out/redis/trackingcache"
	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalogRepository
	splitter   services.OrderSplitter
	cache      *trackingcache.RedisTrackingCache
	publisher  *eventbus.RedisEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	splitter, err := services.NewOrderSplitter(config.TaxRateBps, config.ServiceFeeRateBps)
	if err != nil {
		return CompositionRoot{}, err
	}

	cache, err := trackingcache.NewRedisTrackingCache(redisClient, config.TrackingCacheTTL)
	if err != nil {
		return CompositionRoot{}, err
	}

	publisher, err := eventbus.NewRedisEventPublisher(redisClient)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormCatalogRepository(gormDB),
		splitter:   splitter,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateZoneOrderCommandHandler() commands.CreateZoneOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateZoneOrderCommandHandler(f, c.catalog, c.catalog, c.splitter, c.cache, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCleanupOutboxCommandHandler() commands.CleanupOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupOutboxCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	orders := orderrepo.NewGormOrderRepository(c.gormDB, readTracker{})
	return queries.NewGetTrackingQueryHandler(orders, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetZoneOrdersQueryHandler() queries.GetZoneOrdersQueryHandler {
	return queries.NewGetZoneOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchOutboxCommandHandler(),
		c.CreateCleanupOutboxCommandHandler(),
		c.config.OutboxBatchSize,
		c.config.OutboxRetention,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

// readTracker satisfies the order repository's aggregate tracker for
// non-transactional query use, where nothing is enlisted for commit.
type readTracker struct{}

func (readTracker) TrackAggregate(kernel.UUID, any) {}
