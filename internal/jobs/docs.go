// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Order submission itself is event driven and never waits for a job.
//
// # Available Jobs
//
// 1. OrderStatusReportJob - logs the number of orders per status on a schedule
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(summaryHandler, "@every 1m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept standard five field cron expressions, an optional leading
// seconds field, and descriptors such as "@every 30s" or "@hourly".
// An empty schedule disables the job.
//
// # Error Handling
//
// A failed report is logged and the next tick runs normally.
package jobs
