package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatusReportSchedule runs the report once a minute.
const DefaultStatusReportSchedule = "@every 1m"

const reportTimeout = 10 * time.Second

type statusSummarizer interface {
	Handle(ctx context.Context, query queries.GetOrderStatusSummaryQuery) (queries.GetOrderStatusSummaryQueryResponse, error)
}

// OrderStatusReportJob periodically logs how many orders sit in each status.
// Orders piling up in Processing point at a stalled planning system.
type OrderStatusReportJob struct {
	handler  statusSummarizer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatusReportJob creates the report job. The schedule accepts five or
// six field cron expressions and descriptors such as "@every 30s".
func NewOrderStatusReportJob(handler statusSummarizer, schedule string, logger *slog.Logger) *OrderStatusReportJob {
	if logger == nil {
		logger = slog.Default()
	}

	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	return &OrderStatusReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
		logger:   logger.With("component", "order_status_report_job"),
	}
}

// Start schedules the report.
func (j *OrderStatusReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		j.Run(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order status report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report immediately.
func (j *OrderStatusReportJob) Run(ctx context.Context) {
	summary, err := j.handler.Handle(ctx, queries.NewGetOrderStatusSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order status report failed", "error", err)
		return
	}

	attrs := make([]any, 0, 2*len(summary.Counts)+2)
	attrs = append(attrs, "total", summary.Total)
	for _, count := range summary.Counts {
		attrs = append(attrs, count.Status.String(), count.Count)
	}
	j.logger.InfoContext(ctx, "Order status report", attrs...)
}

// Stop halts scheduling and waits for a running report to finish.
func (j *OrderStatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order status report job stopped")
}
