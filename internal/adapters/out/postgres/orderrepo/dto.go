// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// One table holds all three order roles (single, zone_main, zone_shop);
// zone_shop rows point at their parent through parent_id and carry the
// family trace code plus their 1-based sequence, so a family is always
// reassembled by query rather than stored references.
package orderrepo

import (
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// the hot read paths: lookup by number, children by parent, and the zone
// dashboard scan.
//
// The version column backs optimistic concurrency: every update is a
// compare-and-set against the version the aggregate was read at.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"uniqueIndex;not null"`
	OrderType       string     `gorm:"index;not null"`
	ParentID        *uuid.UUID `gorm:"type:uuid;index"`
	ShopID          *uuid.UUID `gorm:"type:uuid;index"`
	ZoneID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	TableNumber     string
	CustomerName    string
	CustomerPhone   string `gorm:"index"`
	PaymentMethod   string
	SubtotalCents   int64
	TaxCents        int64
	ServiceFeeCents int64
	TotalCents      int64
	Status          string `gorm:"index;not null"`
	TraceCode       string `gorm:"index;not null"`
	TraceSequence   int    `gorm:"not null"`
	Version         int    `gorm:"not null"`
	CreatedAt       time.Time

	Items   []ItemDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item. Position preserves the submitted
// cart order across round trips.
type ItemDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Position       int       `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	Modifiers      []string  `gorm:"serializer:json"`
	Fulfillment    string    `gorm:"not null"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO represents one append-only status history entry. The
// (order_id, position) pair is unique so replaying the aggregate's full
// history on update inserts only the new tail entries.
type StatusHistoryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:uix_order_history_position;not null"`
	Position  int       `gorm:"uniqueIndex:uix_order_history_position;not null"`
	Status    string    `gorm:"not null"`
	Actor     string    `gorm:"not null"`
	Notes     string
	ChangedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for status history entries.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation,
// including line items and the full status history.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	var parentID *uuid.UUID
	if pid := aggregate.ParentID(); pid != nil {
		raw := pid.Bytes()
		parentID = &raw
	}
	var shopID *uuid.UUID
	if sid := aggregate.ShopID(); sid != nil {
		raw := sid.Bytes()
		shopID = &raw
	}

	history := aggregate.History()
	historyDTOs := make([]StatusHistoryDTO, 0, len(history))
	for i, change := range history {
		historyDTOs = append(historyDTOs, StatusHistoryDTO{
			OrderID:   id,
			Position:  i,
			Status:    change.Status().String(),
			Actor:     change.Actor(),
			Notes:     change.Notes(),
			ChangedAt: change.At(),
		})
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:        id,
			Position:       i,
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice(),
			Modifiers:      item.Modifiers(),
			Fulfillment:    item.Fulfillment().String(),
		})
	}

	return OrderDTO{
		ID:              id,
		OrderNumber:     aggregate.OrderNumber(),
		OrderType:       aggregate.Type().String(),
		ParentID:        parentID,
		ShopID:          shopID,
		ZoneID:          aggregate.ZoneID().Bytes(),
		TableNumber:     aggregate.TableNumber(),
		CustomerName:    aggregate.Customer().Name(),
		CustomerPhone:   aggregate.Customer().Phone(),
		PaymentMethod:   aggregate.PaymentMethod(),
		SubtotalCents:   aggregate.Pricing().Subtotal(),
		TaxCents:        aggregate.Pricing().Tax(),
		ServiceFeeCents: aggregate.Pricing().ServiceFee(),
		TotalCents:      aggregate.Pricing().Total(),
		Status:          aggregate.Status().String(),
		TraceCode:       aggregate.Trace().Code(),
		TraceSequence:   aggregate.Trace().Sequence(),
		Version:         aggregate.Version(),
		CreatedAt:       history[0].At(),
		Items:           itemDTOs,
		History:         historyDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, history, pricing, and
// traceability using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}
	var shopID *kernel.UUID
	if dto.ShopID != nil {
		sID, shopErr := kernel.UUIDFromBytes((*dto.ShopID)[:])
		if shopErr != nil {
			return nil, shopErr
		}
		shopID = &sID
	}

	orderType, err := order.OrderTypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}
	pricing, err := order.NewPricing(dto.SubtotalCents, dto.TaxCents, dto.ServiceFeeCents)
	if err != nil {
		return nil, err
	}
	trace, err := order.NewTraceability(dto.TraceCode, dto.TraceSequence)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		fulfillment, itemErr := order.StatusFromString(itemDTO.Fulfillment)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.RestoreItem(
			itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents, itemDTO.Modifiers, fulfillment)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, entry := range dto.History {
		entryStatus, historyErr := order.StatusFromString(entry.Status)
		if historyErr != nil {
			return nil, historyErr
		}
		change, historyErr := order.NewStatusChange(entryStatus, entry.Actor, entry.Notes, entry.ChangedAt)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, change)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		Type:          orderType,
		ParentID:      parentID,
		ShopID:        shopID,
		ZoneID:        zoneID,
		TableNumber:   dto.TableNumber,
		Customer:      customer,
		PaymentMethod: dto.PaymentMethod,
		Items:         items,
		Pricing:       pricing,
		Status:        status,
		History:       history,
		Trace:         trace,
		Version:       dto.Version,
	})
}
