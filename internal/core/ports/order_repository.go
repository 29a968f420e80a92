package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates of
// every type: single, zone_main, and zone_shop.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using the
	// aggregate's version as an optimistic-concurrency precondition.
	// Returns errs.ErrConcurrentModification (wrapped) when the stored row
	// has moved on since the aggregate was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable order
	// number. Returns errs.ErrObjectNotFound (wrapped) when absent.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetChildren retrieves the zone_shop children of a zone_main order,
	// ordered by trace sequence. The child list is always derived this way;
	// parents never store child references.
	GetChildren(ctx context.Context, parentID kernel.UUID) ([]*order.Order, error)
}
