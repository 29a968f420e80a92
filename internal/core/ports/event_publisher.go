package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/outbox"
)

// EventPublisher delivers one outbox event to its notification channel.
// Delivery is best-effort; a failed publish leaves the event pending for a
// later dispatch cycle and never affects order state.
type EventPublisher interface {
	Publish(ctx context.Context, event *outbox.Event) error
}
