package jobs

import (
	"context"
	"log/slog"

	"foodcourt/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxDispatchJob drains the notification outbox. Runs every second so
// committed order changes reach shop displays, zone dashboards, and customer
// tracking pages with sub-second latency.
type OutboxDispatchJob struct {
	handler   commands.DispatchOutboxCommandHandler
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxDispatchJob creates a job that dispatches up to batchSize pending
// events per cycle.
func NewOutboxDispatchJob(
	handler commands.DispatchOutboxCommandHandler,
	batchSize int,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDispatchOutboxCommand(j.batchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// Individual publish failures are swallowed by the handler; an
			// error here means the outbox itself is unreachable.
			j.logger.ErrorContext(ctx, "Outbox dispatch cycle failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
