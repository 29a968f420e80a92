package commands

import (
	"context"
	"log/slog"
	"time"
)

// CleanupOutboxCommandHandler purges dispatched outbox events past their
// retention window, keeping the outbox table bounded.
type CleanupOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	logger     *slog.Logger
}

// NewCleanupOutboxCommandHandler creates a handler for outbox cleanup.
func NewCleanupOutboxCommandHandler(uowFactory OutboxUoWFactory, logger *slog.Logger) CleanupOutboxCommandHandler {
	return CleanupOutboxCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cleanup_outbox"),
	}
}

// Handle removes dispatched events older than the retention window.
func (h *CleanupOutboxCommandHandler) Handle(ctx context.Context, cmd CleanupOutboxCommand) error {
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

	deleted, err := uow.OutboxRepository().DeleteDispatchedBefore(ctx, time.Now().Add(-cmd.Retention()))
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if deleted > 0 {
		h.logger.InfoContext(ctx, "dispatched events purged", "count", deleted)
	}
	return nil
}
