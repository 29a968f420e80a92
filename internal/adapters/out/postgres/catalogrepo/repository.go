package catalogrepo

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ZoneDirectory and CatalogLookup using GORM.
// Catalog reads run outside any unit of work; the catalog changes through a
// different system and its rows are never written here.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetZone retrieves one zone by id.
func (r *GormCatalogRepository) GetZone(ctx context.Context, zoneID kernel.UUID) (ports.ZoneInfo, error) {
	if err := zoneID.Validate(); err != nil {
		return ports.ZoneInfo{}, err
	}

	var dto ZoneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", zoneID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ZoneInfo{}, errs.NewObjectNotFoundError("zone", zoneID.String())
		}
		return ports.ZoneInfo{}, err
	}

	return zoneToDomain(dto)
}

// GetShop retrieves one shop by id.
func (r *GormCatalogRepository) GetShop(ctx context.Context, shopID kernel.UUID) (ports.ShopInfo, error) {
	if err := shopID.Validate(); err != nil {
		return ports.ShopInfo{}, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", shopID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ShopInfo{}, errs.NewObjectNotFoundError("shop", shopID.String())
		}
		return ports.ShopInfo{}, err
	}

	return shopToDomain(dto)
}

// GetItem retrieves one menu item by id.
func (r *GormCatalogRepository) GetItem(ctx context.Context, itemID kernel.UUID) (ports.CatalogItem, error) {
	if err := itemID.Validate(); err != nil {
		return ports.CatalogItem{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", itemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogItem{}, errs.NewObjectNotFoundError("menu item", itemID.String())
		}
		return ports.CatalogItem{}, err
	}

	return itemToDomain(dto)
}
