package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodcourt/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxCleanupJob purges dispatched outbox events past their retention
// window. Runs hourly; pending events are never touched, so an extended
// notification outage cannot lose anything to the cleaner.
type OutboxCleanupJob struct {
	handler   commands.CleanupOutboxCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxCleanupJob creates a job that deletes events dispatched longer
// than retention ago.
func NewOutboxCleanupJob(
	handler commands.CleanupOutboxCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *OutboxCleanupJob {
	return &OutboxCleanupJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "outbox_cleanup_job"),
	}
}

// Start begins the cleanup job to run at the top of every hour.
func (j *OutboxCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCleanupOutboxCommand(j.retention)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Outbox cleanup job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Outbox cleanup cycle failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *OutboxCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job stopped")
}
