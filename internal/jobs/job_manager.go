package jobs

import (
	"fmt"
	"log/slog"
)

// Schedule holds the cron expressions of the jobs. Empty fields use the
// defaults.
type Schedule struct {
	Metrics      string
	Reservations string
}

// Workflow is the part of the workflow facade the jobs refresh.
type Workflow interface {
	MetricsLoader
	PendingLoader
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	metricsJob      *MetricsReportJob
	reservationsJob *PendingReservationsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	workflow Workflow,
	counter TransitionCounter,
	schedule Schedule,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		metricsJob:      NewMetricsReportJob(workflow, counter, schedule.Metrics, logger),
		reservationsJob: NewPendingReservationsJob(workflow, schedule.Reservations, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.metricsJob.Start(); err != nil {
		return fmt.Errorf("failed to start metrics report job: %w", err)
	}

	if err := jm.reservationsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.metricsJob.Stop()
		return fmt.Errorf("failed to start pending reservations job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationsJob.Stop()
	jm.metricsJob.Stop()
}
