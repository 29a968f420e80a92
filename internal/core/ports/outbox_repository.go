package ports

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for pending notification
// events. Events are added inside the same transaction as the order change
// that produced them and drained asynchronously by the dispatcher job.
type OutboxRepository interface {
	// Add persists pending events.
	Add(ctx context.Context, events []*outbox.Event) error

	// GetPending retrieves up to limit undispatched events, oldest first.
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)

	// Update persists the dispatch outcome (dispatchedAt, attempts) of one
	// event.
	Update(ctx context.Context, event *outbox.Event) error

	// DeleteDispatchedBefore removes events dispatched before the cutoff and
	// returns how many were deleted.
	DeleteDispatchedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
