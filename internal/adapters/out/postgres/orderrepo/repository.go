package orderrepo

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its line items and the
// initial status history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database, guarded by the aggregate's
// version. The write succeeds only when the stored row is still at the
// version the aggregate was read at; a concurrent writer having moved it on
// yields errs.ErrConcurrentModification and nothing is changed.
//
// On success the aggregate's version is bumped to match the stored row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	id := aggregate.ID().Bytes()
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", id, expected).
		Updates(map[string]any{
			"status":  aggregate.Status().String(),
			"version": expected + 1,
		})
	if result.Error != nil {
		return errs.NewPersistenceError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID())
	}

	// Line items are replaced wholesale; their fulfillment statuses may
	// change on any transition.
	dto := fromDomain(aggregate)
	if err := tx.Where("order_id = ?", id).Delete(&ItemDTO{}).Error; err != nil {
		return errs.NewPersistenceError("update order items", err)
	}
	if len(dto.Items) > 0 {
		if err := tx.Create(&dto.Items).Error; err != nil {
			return errs.NewPersistenceError("update order items", err)
		}
	}

	// History is append-only: replay the full history and let the unique
	// (order_id, position) index drop the entries already on disk.
	if len(dto.History) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
			return errs.NewPersistenceError("update order history", err)
		}
	}

	aggregate.MarkUpdated()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items and status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withAssociations(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto OrderDTO
	if err := r.withAssociations(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetChildren retrieves the zone_shop children of a parent order, ordered by
// their trace sequence (the 1-based basket index).
func (r *GormOrderRepository) GetChildren(ctx context.Context, parentID kernel.UUID) ([]*order.Order, error) {
	if err := parentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.withAssociations(ctx).
		Order("trace_sequence").
		Find(&dtos, "parent_id = ?", parentID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	children := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		child, childErr := toDomain(dto)
		if childErr != nil {
			return nil, childErr
		}
		children = append(children, child)
	}

	return children, nil
}

// withAssociations preloads items and history in their stored order.
func (r *GormOrderRepository) withAssociations(ctx context.Context) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}
	return r.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("History", byPosition)
}
