// Package outboxrepo persists notification outbox events. Events land in the
// same transaction as the order mutation that produced them and are drained
// asynchronously by the dispatcher job, oldest first.
package outboxrepo

import (
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for one outbox event. A NULL
// dispatched_at marks the event as pending; the partial ordering of the
// drain is occurred_at ascending.
type EventDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Channel      string    `gorm:"not null"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Payload      []byte    `gorm:"not null"`
	OccurredAt   time.Time `gorm:"index;not null"`
	DispatchedAt *time.Time `gorm:"index"`
	Attempts     int       `gorm:"not null"`
}

// TableName specifies the database table name for outbox events.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// fromDomain converts an outbox event to its database representation.
func fromDomain(event *outbox.Event) EventDTO {
	return EventDTO{
		ID:           event.ID().Bytes(),
		Name:         event.Name(),
		Channel:      event.Channel(),
		OrderID:      event.OrderID().Bytes(),
		Payload:      event.Payload(),
		OccurredAt:   event.OccurredAt(),
		DispatchedAt: event.DispatchedAt(),
		Attempts:     event.Attempts(),
	}
}

// toDomain converts a database DTO back to an outbox event.
func toDomain(dto EventDTO) (*outbox.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreEvent(
		id, dto.Name, dto.Channel, orderID, dto.Payload,
		dto.OccurredAt, dto.DispatchedAt, dto.Attempts,
	)
}
