package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"foodcourt/cmd"
	"foodcourt/internal/adapters/in/http"
	"foodcourt/internal/adapters/out/postgres/catalogrepo"
	"foodcourt/internal/adapters/out/postgres/orderrepo"
	"foodcourt/internal/adapters/out/postgres/outboxrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:         goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		TaxRateBps:        goDotEnvInt64("TAX_RATE_BPS"),
		ServiceFeeRateBps: goDotEnvInt64("SERVICE_FEE_RATE_BPS"),
		TrackingCacheTTL:  goDotEnvDuration("TRACKING_CACHE_TTL"),
		OutboxBatchSize:   int(goDotEnvInt64("OUTBOX_BATCH_SIZE")),
		OutboxRetention:   goDotEnvDuration("OUTBOX_RETENTION"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt64(key string) int64 {
	value, err := strconv.ParseInt(goDotEnvVariable(key), 10, 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func goDotEnvDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&outboxrepo.EventDTO{},
		&catalogrepo.ZoneDTO{},
		&catalogrepo.ShopDTO{},
		&catalogrepo.MenuItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := http.NewServer(
		app.CreateCreateZoneOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateGetTrackingQueryHandler(),
		app.CreateGetZoneOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
