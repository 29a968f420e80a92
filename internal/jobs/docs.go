// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drain and maintain the notification outbox.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to publish pending outbox events to their channels
// 2. OutboxCleanupJob - Runs hourly to purge dispatched events older than the retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, cleanupHandler, batchSize, retention, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses the cron expression "* * * * * *" (every second) so
// notifications leave the outbox with sub-second latency under normal load.
// The cleanup job runs at the top of every hour; pending events are never
// purged regardless of age.
//
// # Error Handling
//
// - Dispatch cycles log failures and rely on the outbox to retry events
// - Cleanup failures only delay purging and are logged
// - Failed job starts will stop any already running jobs
package jobs
