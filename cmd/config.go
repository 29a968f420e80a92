package cmd

import "time"

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisAddr         string
	RedisPassword     string
	TaxRateBps        int64
	ServiceFeeRateBps int64
	TrackingCacheTTL  time.Duration
	OutboxBatchSize   int
	OutboxRetention   time.Duration
}
