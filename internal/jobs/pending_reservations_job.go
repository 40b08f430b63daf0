package jobs

import (
	"context"
	"log/slog"

	"restaurantops/internal/core/domain/model/reservation"

	"github.com/robfig/cron/v3"
)

// DefaultReservationsSchedule polls the pending reservations every 30 seconds.
const DefaultReservationsSchedule = "*/30 * * * * *"

// PendingLoader refreshes the reservations awaiting a decision.
type PendingLoader interface {
	LoadPendingReservations(ctx context.Context) ([]reservation.Reservation, error)
}

// PendingReservationsJob keeps the pending reservation view fresh for the
// approval queue and logs the backlog.
type PendingReservationsJob struct {
	loader   PendingLoader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPendingReservationsJob creates a new pending reservations job.
func NewPendingReservationsJob(loader PendingLoader, schedule string, logger *slog.Logger) *PendingReservationsJob {
	if schedule == "" {
		schedule = DefaultReservationsSchedule
	}
	return &PendingReservationsJob{
		loader:   loader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_reservations_job"),
	}
}

// Run performs one poll and returns the number of pending reservations.
func (j *PendingReservationsJob) Run(ctx context.Context) (int, error) {
	pending, err := j.loader.LoadPendingReservations(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) > 0 {
		j.logger.InfoContext(ctx, "Reservations awaiting a decision",
			"count", len(pending), "oldest", pending[0].ReservationTime)
	}
	return len(pending), nil
}

// Start schedules the job.
func (j *PendingReservationsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Pending reservations job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending reservations job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job.
func (j *PendingReservationsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending reservations job stopped")
}
