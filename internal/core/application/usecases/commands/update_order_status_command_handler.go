package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/core/domain/model/tracking"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
)

// UpdateOrderStatusResult reports the outcome of one status transition: the
// updated order, and, when a zone_shop transition moved its parent, the
// recomputed parent. ChildChanged is always true on success, since
// same-status transitions are rejected as invalid; it is reported anyway so
// callers read both outcomes the same way.
type UpdateOrderStatusResult struct {
	Order         *order.Order
	ChildChanged  bool
	Parent        *order.Order
	ParentChanged bool
}

// UpdateOrderStatusCommandHandler handles staff status transitions.
//
// For zone_shop orders the handler recomputes the parent's aggregated status
// from a fresh read of all siblings inside the same transaction, so the
// parent can never drift from its children regardless of interleaving. All
// writes use optimistic version checks; losing a race surfaces as a
// concurrent_modification error and nothing is persisted.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, cache, logger)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Ready, "shop-staff-1", "")
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrentModification) {
//	    // Refetch and retry with current state
//	    return
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transition
// operations. Requires a UoWFactory for transactional persistence and the
// tracking cache for post-commit snapshot refresh.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "update_order_status"),
	}
}

// Handle processes one status transition command.
//
// The transition, its history entry, the parent recompute (for zone_shop
// orders), and all status_updated outbox events commit in one transaction.
// Returns errs.ErrObjectNotFound (wrapped) for unknown orders,
// order.ErrParentStatusIsDerived for direct zone_main transitions,
// order.ErrInvalidTransition for moves absent from the table, and
// errs.ErrConcurrentModification when the expected-status precondition or a
// version check fails.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	outboxRepo := uow.OutboxRepository()

	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}
	if target.Type() == order.TypeZoneMain {
		return UpdateOrderStatusResult{}, order.ErrParentStatusIsDerived
	}
	if expected := cmd.ExpectedStatus(); expected != nil && target.Status() != *expected {
		return UpdateOrderStatusResult{}, errs.NewConcurrentModificationErrorWithCause(
			"order status", target.ID(),
			fmt.Errorf("expected status %s, found %s", *expected, target.Status()),
		)
	}

	now := time.Now()
	if err = target.TransitionTo(cmd.Next(), cmd.Actor(), cmd.Notes(), now); err != nil {
		return UpdateOrderStatusResult{}, err
	}
	if err = orderRepo.Update(ctx, target); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	events, err := outbox.EventsFor(outbox.EventOrderStatusUpdated, target, cmd.Actor(), now)
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	result := UpdateOrderStatusResult{Order: target, ChildChanged: true}
	var siblings []*order.Order
	if target.Type() == order.TypeZoneShop {
		parent, children, parentChanged, parentErr := h.recomputeParent(ctx, orderRepo, target, now)
		if parentErr != nil {
			return UpdateOrderStatusResult{}, parentErr
		}
		result.Parent = parent
		result.ParentChanged = parentChanged
		siblings = children

		if parentChanged {
			parentEvents, eventsErr := outbox.EventsFor(outbox.EventOrderStatusUpdated, parent, order.SystemActor, now)
			if eventsErr != nil {
				return UpdateOrderStatusResult{}, eventsErr
			}
			events = append(events, parentEvents...)
		}
	}

	if err = outboxRepo.Add(ctx, events); err != nil {
		return UpdateOrderStatusResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	h.refreshSnapshot(ctx, result, siblings)

	return result, nil
}

// recomputeParent derives the parent's status from a fresh in-transaction
// read of every child (including the one just written) and persists the
// parent. The parent row is written on every child transition, even when the
// aggregated status is unchanged: the version check on that write is what
// serializes sibling recomputations. Two transactions moving different
// children would otherwise each see a stale sibling, both conclude "no
// parent change", and commit a child union the parent no longer matches.
// The fresh children are returned for the post-commit snapshot refresh.
func (h *UpdateOrderStatusCommandHandler) recomputeParent(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	child *order.Order,
	now time.Time,
) (*order.Order, []*order.Order, bool, error) {
	parent, err := orderRepo.Get(ctx, *child.ParentID())
	if err != nil {
		return nil, nil, false, err
	}

	children, err := orderRepo.GetChildren(ctx, parent.ID())
	if err != nil {
		return nil, nil, false, err
	}
	statuses := make([]order.Status, 0, len(children))
	for _, sibling := range children {
		statuses = append(statuses, sibling.Status())
	}

	aggregated, err := order.AggregateChildren(statuses)
	if err != nil {
		return nil, nil, false, err
	}

	changed, err := parent.ApplyAggregateStatus(aggregated, now)
	if err != nil {
		return nil, nil, false, err
	}
	if err = orderRepo.Update(ctx, parent); err != nil {
		return nil, nil, false, err
	}

	return parent, children, changed, nil
}

// refreshSnapshot rebuilds and stores the family's tracking snapshot after a
// committed transition. Best-effort: failures are logged and swallowed.
func (h *UpdateOrderStatusCommandHandler) refreshSnapshot(
	ctx context.Context,
	result UpdateOrderStatusResult,
	siblings []*order.Order,
) {
	root := result.Parent
	if root == nil {
		root = result.Order
	}

	snapshot, err := tracking.FromFamily(root, siblings, time.Now())
	if err != nil {
		h.logger.WarnContext(ctx, "tracking snapshot rebuild failed",
			"orderNumber", root.OrderNumber(), "error", err)
		return
	}
	if err = h.cache.Put(ctx, snapshot); err != nil {
		h.logger.WarnContext(ctx, "tracking cache refresh failed",
			"orderNumber", root.OrderNumber(), "error", err)
	}
}
