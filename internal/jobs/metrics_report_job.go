package jobs

import (
	"context"
	"log/slog"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/services"
	"restaurantops/internal/core/domain/workflow"

	"github.com/robfig/cron/v3"
)

// DefaultMetricsSchedule refreshes the metrics once a minute.
const DefaultMetricsSchedule = "@every 1m"

// MetricsLoader refreshes the dispatch metrics.
type MetricsLoader interface {
	LoadMetrics(ctx context.Context) (delivery.Metrics, error)
}

// TransitionCounter counts audited transitions of one kind.
type TransitionCounter interface {
	Count(ctx context.Context, kind workflow.Kind) (int64, error)
}

// MetricsReportJob periodically refreshes the dispatch metrics and reports
// them together with the number of audited transitions per kind.
type MetricsReportJob struct {
	loader   MetricsLoader
	counter  TransitionCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewMetricsReportJob creates a new metrics job. A nil counter skips the
// transition counts.
func NewMetricsReportJob(
	loader MetricsLoader,
	counter TransitionCounter,
	schedule string,
	logger *slog.Logger,
) *MetricsReportJob {
	if schedule == "" {
		schedule = DefaultMetricsSchedule
	}
	return &MetricsReportJob{
		loader:   loader,
		counter:  counter,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "metrics_report_job"),
	}
}

// Run performs one report.
func (j *MetricsReportJob) Run(ctx context.Context) error {
	metrics, err := j.loader.LoadMetrics(ctx)
	if err != nil {
		return err
	}

	attrs := []any{
		"total", metrics.TotalDeliveries,
		"completed", metrics.CompletedDeliveries,
		"pending", metrics.PendingDeliveries,
		"averageMinutes", metrics.AverageDeliveryTime,
		"onTimeRate", metrics.OnTimeDeliveryRate,
		"activePersons", metrics.ActiveDeliveryPersons,
	}
	if j.counter != nil {
		for _, kind := range services.Transitions.Kinds() {
			n, err := j.counter.Count(ctx, kind)
			if err != nil {
				return err
			}
			attrs = append(attrs, "transitions."+string(kind), n)
		}
	}

	j.logger.InfoContext(ctx, "Dispatch metrics", attrs...)
	return nil
}

// Start schedules the job.
func (j *MetricsReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Metrics report job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Metrics report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running report to finish.
func (j *MetricsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Metrics report job stopped")
}
