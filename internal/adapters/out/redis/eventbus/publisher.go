// Package eventbus publishes outbox events to Redis pub/sub channels. Shop
// displays, zone dashboards, and customer tracking pages subscribe to their
// channels directly; there is no delivery guarantee beyond what the outbox
// retry loop provides.
package eventbus

import (
	"context"

	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisEventPublisher implements EventPublisher on top of Redis pub/sub.
type RedisEventPublisher struct {
	client *redis.Client
}

// NewRedisEventPublisher creates a publisher using the given Redis client.
func NewRedisEventPublisher(client *redis.Client) (*RedisEventPublisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	return &RedisEventPublisher{client: client}, nil
}

// Publish delivers one event's payload to its channel. Failures are reported
// as notification errors; the dispatcher keeps the event pending and retries
// on the next cycle.
func (p *RedisEventPublisher) Publish(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	if err := p.client.Publish(ctx, event.Channel(), event.Payload()).Err(); err != nil {
		return errs.NewNotificationError(event.Channel(), err)
	}
	return nil
}
