package commands

import (
	"context"
	"log/slog"
	"time"

	"foodcourt/internal/core/ports"
)

// DispatchOutboxCommandHandler drains pending notification events.
//
// Delivery is best-effort by contract: a failed publish is logged, its
// attempt counted, and the event left pending for the next cycle. Publish
// failures never surface to the caller; only transaction-level failures do.
//
// Example:
//
//	handler := NewDispatchOutboxCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewDispatchOutboxCommand(100)
//
//	// Typically called every second by the dispatch job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("outbox drain failed: %w", err)
//	}
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDispatchOutboxCommandHandler creates a handler for outbox drain cycles.
// Requires an OutboxUoWFactory for transactional outcome tracking and an
// EventPublisher for channel delivery.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "dispatch_outbox"),
	}
}

// Handle processes one drain cycle: reads up to BatchSize pending events
// oldest first, publishes each, and persists the per-event outcome.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	events, err := outboxRepo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	for _, event := range events {
		if publishErr := h.publisher.Publish(ctx, event); publishErr != nil {
			event.MarkFailed()
			h.logger.WarnContext(ctx, "event publish failed",
				"event", event.Name(), "channel", event.Channel(),
				"attempts", event.Attempts(), "error", publishErr)
		} else {
			event.MarkDispatched(time.Now())
		}

		if err = outboxRepo.Update(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
