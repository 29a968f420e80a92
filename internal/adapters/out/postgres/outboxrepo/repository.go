package outboxrepo

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists pending events in one batch insert.
func (r *GormOutboxRepository) Add(ctx context.Context, events []*outbox.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(event))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewPersistenceError("add outbox events", err)
	}
	return nil
}

// GetPending retrieves up to limit undispatched events, oldest first.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*outbox.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, eventErr := toDomain(dto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return events, nil
}

// Update persists the dispatch outcome of one event.
func (r *GormOutboxRepository) Update(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", event.ID().Bytes()).
		Updates(map[string]any{
			"dispatched_at": event.DispatchedAt(),
			"attempts":      event.Attempts(),
		})
	if result.Error != nil {
		return errs.NewPersistenceError("update outbox event", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", event.ID().String())
	}

	return nil
}

// DeleteDispatchedBefore removes events dispatched before the cutoff and
// returns how many rows were deleted. Pending events are never touched.
func (r *GormOutboxRepository) DeleteDispatchedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("dispatched_at IS NOT NULL AND dispatched_at < ?", cutoff).
		Delete(&EventDTO{})
	if result.Error != nil {
		return 0, errs.NewPersistenceError("delete dispatched outbox events", result.Error)
	}

	return result.RowsAffected, nil
}
