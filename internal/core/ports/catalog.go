package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
)

// ZoneInfo describes one venue as seen by order validation.
type ZoneInfo struct {
	ID     kernel.UUID
	Name   string
	Active bool
}

// ShopInfo describes one shop within a zone.
type ShopInfo struct {
	ID     kernel.UUID
	ZoneID kernel.UUID
	Name   string
	Active bool
}

// CatalogItem is the menu entry a cart line resolves against. The stored
// price is authoritative; client-submitted prices are never trusted.
type CatalogItem struct {
	ID         kernel.UUID
	ShopID     kernel.UUID
	Name       string
	PriceCents int64
	Available  bool
}

// ZoneDirectory answers availability questions about zones and their shops.
type ZoneDirectory interface {
	// GetZone retrieves one zone by id. Returns errs.ErrObjectNotFound
	// (wrapped) when the zone does not exist.
	GetZone(ctx context.Context, zoneID kernel.UUID) (ZoneInfo, error)

	// GetShop retrieves one shop by id. Returns errs.ErrObjectNotFound
	// (wrapped) when the shop does not exist.
	GetShop(ctx context.Context, shopID kernel.UUID) (ShopInfo, error)
}

// CatalogLookup resolves submitted cart lines against the menu.
type CatalogLookup interface {
	// GetItem retrieves one menu item by id. Returns errs.ErrObjectNotFound
	// (wrapped) when the item does not exist.
	GetItem(ctx context.Context, itemID kernel.UUID) (CatalogItem, error)
}
