// Package trackingcache caches tracking snapshots in Redis. Entries are
// keyed by the family's root order number and expire after a TTL; the order
// store stays the source of truth, so losing the whole cache only costs read
// latency, never correctness.
package trackingcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/core/domain/model/tracking"
	"foodcourt/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tracking:"

// RedisTrackingCache implements TrackingCache on top of a Redis client.
type RedisTrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTrackingCache creates a tracking cache with the given entry TTL.
func NewRedisTrackingCache(client *redis.Client, ttl time.Duration) (*RedisTrackingCache, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ttl",
			fmt.Errorf("%s is not positive", ttl))
	}
	return &RedisTrackingCache{client: client, ttl: ttl}, nil
}

// Get retrieves a cached snapshot by order number. A missing key is a cache
// miss and returns (nil, nil); so does a corrupt entry, which is dropped.
func (c *RedisTrackingCache) Get(ctx context.Context, orderNumber string) (*tracking.Snapshot, error) {
	raw, err := c.client.Get(ctx, keyPrefix+orderNumber).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot tracking.Snapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		// Treat undecodable entries as a miss; the next Put overwrites them.
		c.client.Del(ctx, keyPrefix+orderNumber)
		return nil, nil
	}

	return &snapshot, nil
}

// Put stores a snapshot under its order number, replacing any previous value.
func (c *RedisTrackingCache) Put(ctx context.Context, snapshot *tracking.Snapshot) error {
	if snapshot == nil {
		return errs.NewValueIsRequiredError("snapshot")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+snapshot.OrderNumber, raw, c.ttl).Err()
}

// Invalidate drops the cached snapshot of an order number, if any.
func (c *RedisTrackingCache) Invalidate(ctx context.Context, orderNumber string) error {
	return c.client.Del(ctx, keyPrefix+orderNumber).Err()
}
