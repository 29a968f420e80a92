// Package catalogrepo reads the zone, shop, and menu reference data that
// order validation resolves carts against. The catalog is owned by a
// separate back office and treated as read-only here; stored prices are
// authoritative and client-submitted prices are never trusted.
package catalogrepo

import (
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"

	"github.com/google/uuid"
)

// ZoneDTO represents one venue row.
type ZoneDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"not null"`
	Active bool      `gorm:"not null"`
}

// TableName specifies the database table name for zones.
func (ZoneDTO) TableName() string {
	return "zones"
}

// ShopDTO represents one shop row within a zone.
type ShopDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ZoneID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name   string    `gorm:"not null"`
	Active bool      `gorm:"not null"`
}

// TableName specifies the database table name for shops.
func (ShopDTO) TableName() string {
	return "shops"
}

// MenuItemDTO represents one menu entry row of a shop.
type MenuItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"not null"`
	PriceCents int64     `gorm:"not null"`
	Available  bool      `gorm:"not null"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func zoneToDomain(dto ZoneDTO) (ports.ZoneInfo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ZoneInfo{}, err
	}
	return ports.ZoneInfo{
		ID:     id,
		Name:   dto.Name,
		Active: dto.Active,
	}, nil
}

func shopToDomain(dto ShopDTO) (ports.ShopInfo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ShopInfo{}, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return ports.ShopInfo{}, err
	}
	return ports.ShopInfo{
		ID:     id,
		ZoneID: zoneID,
		Name:   dto.Name,
		Active: dto.Active,
	}, nil
}

func itemToDomain(dto MenuItemDTO) (ports.CatalogItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.CatalogItem{}, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return ports.CatalogItem{}, err
	}
	return ports.CatalogItem{
		ID:         id,
		ShopID:     shopID,
		Name:       dto.Name,
		PriceCents: dto.PriceCents,
		Available:  dto.Available,
	}, nil
}
