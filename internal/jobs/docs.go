// Package jobs provides scheduled background tasks for the restaurant
// workflow engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. MetricsReportJob - Refreshes the dispatch metrics and logs them with the audited transition counts
// 2. PendingReservationsJob - Refreshes the pending reservations awaiting a decision and logs the backlog
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(facade, transitionLog, jobs.Schedule{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept the six field cron syntax with seconds as well as
// descriptors such as "@every 1m". Empty schedules fall back to
// DefaultMetricsSchedule and DefaultReservationsSchedule.
//
// # Error Handling
//
// Job runs log their errors and never stop the scheduler. Failed job starts
// stop any already running jobs.
package jobs
