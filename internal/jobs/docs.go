// Package jobs provides scheduled background tasks for the workshop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueScanJob - recounts undelivered orders past their expected day and
// publishes the count as the workshop_orders_overdue gauge
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOverdueScanJob(todayMetricsHandler, cfg.OverdueScanSchedule, nil),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatalw(ctx, "failed to start jobs", "error", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields, seconds first. The overdue scan defaults to every
// five minutes and also runs once at start-up so the gauge is never empty.
//
// # Error Handling
//
// A failed scan is logged and leaves the gauge at its previous value.
// Failed job starts stop any already running jobs.
package jobs
