package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/core/domain/model/tracking"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
)

// Business rule violations of cart submission. Declared once so callers and
// the HTTP adapter can match with errors.Is and map stable codes.
var (
	ErrZoneUnavailable = errs.NewBusinessRuleError(errs.CodeZoneUnavailable,
		"zone is not accepting orders")
	ErrItemUnavailable = errs.NewBusinessRuleError(errs.CodeItemUnavailable,
		"cart references an unavailable item")
	ErrNoEligibleShops = errs.NewBusinessRuleError(errs.CodeNoEligibleShops,
		"cart resolves to no eligible shops")
)

// CreateZoneOrderResult carries the committed order family back to the caller.
type CreateZoneOrderResult struct {
	Parent   *order.Order
	Children []*order.Order
}

// CreateZoneOrderCommandHandler handles the business logic for zone cart
// submission: availability validation, splitting, and atomic persistence of
// the whole family plus its order.created notifications.
//
// Rejection is all-or-nothing: any unavailable zone, shop, or item fails the
// entire submission and nothing is persisted.
//
// Example:
//
//	handler := NewCreateZoneOrderCommandHandler(uowFactory, zones, catalog, splitter, cache, logger)
//	cmd, _ := NewCreateZoneOrderCommand(zoneID, "T12", "Dana", "+77010001122", "card", lines)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrItemUnavailable) {
//	    // Ask the customer to revise the cart
//	    return
//	}
type CreateZoneOrderCommandHandler struct {
	uowFactory UoWFactory
	zones      ports.ZoneDirectory
	catalog    ports.CatalogLookup
	splitter   services.OrderSplitter
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewCreateZoneOrderCommandHandler creates a handler for zone cart submission.
// Requires a UoWFactory for transactional persistence, directory and catalog
// lookups for availability validation, the splitter domain service, and the
// tracking cache for post-commit snapshot refresh.
func NewCreateZoneOrderCommandHandler(
	uowFactory UoWFactory,
	zones ports.ZoneDirectory,
	catalog ports.CatalogLookup,
	splitter services.OrderSplitter,
	cache ports.TrackingCache,
	logger *slog.Logger,
) CreateZoneOrderCommandHandler {
	return CreateZoneOrderCommandHandler{
		uowFactory: uowFactory,
		zones:      zones,
		catalog:    catalog,
		splitter:   splitter,
		cache:      cache,
		logger:     logger.With("component", "create_zone_order"),
	}
}

// Handle processes one cart submission.
//
// Validates zone and item availability, groups resolved lines into per-shop
// baskets preserving submission order, splits the cart into an order family,
// and persists parent, children, and outbox events in a single transaction.
// After commit the tracking snapshot is stored best-effort; a cache failure
// is logged and never fails the submission.
func (h *CreateZoneOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateZoneOrderCommand,
) (CreateZoneOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateZoneOrderResult{}, err
	}

	zone, err := h.zones.GetZone(ctx, cmd.ZoneID())
	if err != nil {
		// A zone the directory does not know is as unavailable as an
		// inactive one; callers get one stable code either way.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateZoneOrderResult{}, fmt.Errorf("%w: zone %s", ErrZoneUnavailable, cmd.ZoneID())
		}
		return CreateZoneOrderResult{}, err
	}
	if !zone.Active {
		return CreateZoneOrderResult{}, fmt.Errorf("%w: zone %s", ErrZoneUnavailable, zone.ID)
	}

	baskets, err := h.resolveBaskets(ctx, cmd)
	if err != nil {
		return CreateZoneOrderResult{}, err
	}
	if len(baskets) == 0 {
		return CreateZoneOrderResult{}, ErrNoEligibleShops
	}

	customer, err := order.NewCustomer(cmd.CustomerName(), cmd.CustomerPhone())
	if err != nil {
		return CreateZoneOrderResult{}, err
	}

	now := time.Now()
	family, err := h.splitter.Split(services.SplitRequest{
		ZoneID:        cmd.ZoneID(),
		TableNumber:   cmd.TableNumber(),
		Customer:      customer,
		PaymentMethod: cmd.PaymentMethod(),
		Baskets:       baskets,
		SubmittedAt:   now,
	})
	if err != nil {
		return CreateZoneOrderResult{}, err
	}

	if err = h.persistFamily(ctx, family, now); err != nil {
		return CreateZoneOrderResult{}, err
	}

	h.refreshSnapshot(ctx, family)

	return CreateZoneOrderResult{Parent: family.Parent, Children: family.Children}, nil
}

// resolveBaskets resolves every cart line against the catalog and groups the
// validated items into per-shop baskets, ordered by each shop's first
// appearance in the cart.
func (h *CreateZoneOrderCommandHandler) resolveBaskets(
	ctx context.Context,
	cmd CreateZoneOrderCommand,
) ([]services.Basket, error) {
	var (
		baskets   []services.Basket
		basketIdx = make(map[kernel.UUID]int)
		shopOK    = make(map[kernel.UUID]bool)
	)

	for _, line := range cmd.Lines() {
		catalogItem, err := h.catalog.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: item %s is not on the menu", ErrItemUnavailable, line.ItemID)
			}
			return nil, err
		}
		if !catalogItem.Available {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, catalogItem.Name)
		}

		if _, checked := shopOK[catalogItem.ShopID]; !checked {
			shop, shopErr := h.zones.GetShop(ctx, catalogItem.ShopID)
			if shopErr != nil {
				if errors.Is(shopErr, errs.ErrObjectNotFound) {
					return nil, fmt.Errorf("%w: %s (shop is not accepting orders)", ErrItemUnavailable, catalogItem.Name)
				}
				return nil, shopErr
			}
			shopOK[catalogItem.ShopID] = shop.Active && shop.ZoneID.IsEqual(cmd.ZoneID())
		}
		if !shopOK[catalogItem.ShopID] {
			return nil, fmt.Errorf("%w: %s (shop is not accepting orders)", ErrItemUnavailable, catalogItem.Name)
		}

		item, err := order.NewItem(catalogItem.Name, line.Quantity, catalogItem.PriceCents, line.Modifiers)
		if err != nil {
			return nil, err
		}

		idx, exists := basketIdx[catalogItem.ShopID]
		if !exists {
			idx = len(baskets)
			basketIdx[catalogItem.ShopID] = idx
			baskets = append(baskets, services.Basket{ShopID: catalogItem.ShopID})
		}
		baskets[idx].Items = append(baskets[idx].Items, item)
	}

	return baskets, nil
}

// persistFamily writes the parent, every child, and the order.created outbox
// events in one transaction.
func (h *CreateZoneOrderCommandHandler) persistFamily(
	ctx context.Context,
	family services.Family,
	at time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	outboxRepo := uow.OutboxRepository()

	var events []*outbox.Event
	for _, member := range family.All() {
		if err := orderRepo.Add(ctx, member); err != nil {
			return err
		}
		memberEvents, err := outbox.EventsFor(outbox.EventOrderCreated, member, "customer", at)
		if err != nil {
			return err
		}
		events = append(events, memberEvents...)
	}

	if err := outboxRepo.Add(ctx, events); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// refreshSnapshot stores the tracking snapshot of a freshly committed family.
// Best-effort: failures are logged and swallowed.
func (h *CreateZoneOrderCommandHandler) refreshSnapshot(ctx context.Context, family services.Family) {
	snapshot, err := tracking.FromFamily(family.Parent, family.Children, time.Now())
	if err != nil {
		h.logger.WarnContext(ctx, "tracking snapshot build failed",
			"orderNumber", family.Parent.OrderNumber(), "error", err)
		return
	}
	if err = h.cache.Put(ctx, snapshot); err != nil {
		h.logger.WarnContext(ctx, "tracking cache refresh failed",
			"orderNumber", family.Parent.OrderNumber(), "error", err)
	}
}
