package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/tracking"
)

// TrackingCache stores denormalized tracking snapshots keyed by order
// number. The cache is strictly an optimization: a miss or a failure must
// never make tracking unavailable, callers fall back to rebuilding the
// snapshot from the order store.
type TrackingCache interface {
	// Get retrieves a cached snapshot by order number. Returns (nil, nil) on
	// a cache miss.
	Get(ctx context.Context, orderNumber string) (*tracking.Snapshot, error)

	// Put stores a snapshot under its order number, replacing any previous
	// value.
	Put(ctx context.Context, snapshot *tracking.Snapshot) error

	// Invalidate drops the cached snapshot of an order number, if any.
	Invalidate(ctx context.Context, orderNumber string) error
}
