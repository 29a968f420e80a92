package queries

import (
	"context"
	"log/slog"
	"time"

	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/tracking"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
)

// GetTrackingQueryHandler serves tracking snapshots read-through: a cache hit
// answers immediately, a miss (or any cache failure) rebuilds the snapshot
// from the order store and repopulates the cache best-effort. The store is
// the source of truth; the cache only shortens the path.
//
// Example:
//
//	handler := NewGetTrackingQueryHandler(orderRepo, cache, logger)
//	query, _ := NewGetTrackingQuery("FC-3FA8B01C2D", "+77010001122")
//
//	snapshot, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // Unknown order number or wrong phone
//	    return
//	}
type GetTrackingQueryHandler struct {
	orders ports.OrderRepository
	cache  ports.TrackingCache
	logger *slog.Logger
}

// NewGetTrackingQueryHandler creates a handler for tracking queries.
// Requires a non-transactional order repository and the tracking cache.
func NewGetTrackingQueryHandler(
	orders ports.OrderRepository,
	cache ports.TrackingCache,
	logger *slog.Logger,
) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{
		orders: orders,
		cache:  cache,
		logger: logger.With("component", "get_tracking"),
	}
}

// Handle resolves the query to a tracking snapshot.
//
// Child order numbers are normalized to the family root first, so every
// member of a family shares one cache entry. Returns errs.ErrObjectNotFound
// (wrapped) for unknown numbers and for phone mismatches alike.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (*tracking.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rootNumber := order.ParentOrderNumber(query.OrderNumber())

	snapshot, err := h.cache.Get(ctx, rootNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "tracking cache read failed",
			"orderNumber", rootNumber, "error", err)
	}
	if snapshot != nil {
		if query.Phone() != "" && snapshot.CustomerPhone != query.Phone() {
			return nil, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
		}
		return snapshot, nil
	}

	return h.rebuild(ctx, rootNumber, query)
}

// rebuild reconstructs the snapshot from committed orders and repopulates
// the cache best-effort.
func (h GetTrackingQueryHandler) rebuild(
	ctx context.Context,
	rootNumber string,
	query GetTrackingQuery,
) (*tracking.Snapshot, error) {
	root, err := h.orders.GetByNumber(ctx, rootNumber)
	if err != nil {
		return nil, err
	}
	if query.Phone() != "" && root.Customer().Phone() != query.Phone() {
		return nil, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}

	var children []*order.Order
	if root.Type() == order.TypeZoneMain {
		if children, err = h.orders.GetChildren(ctx, root.ID()); err != nil {
			return nil, err
		}
	}

	snapshot, err := tracking.FromFamily(root, children, time.Now())
	if err != nil {
		return nil, err
	}

	if cacheErr := h.cache.Put(ctx, snapshot); cacheErr != nil {
		h.logger.WarnContext(ctx, "tracking cache repopulate failed",
			"orderNumber", rootNumber, "error", cacheErr)
	}

	return snapshot, nil
}
