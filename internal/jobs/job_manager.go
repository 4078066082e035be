package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusReportJob *OrderStatusReportJob
}

// NewJobManager creates a new job manager with all required jobs.
// An empty reportSchedule disables the status report.
func NewJobManager(
	summaryHandler statusSummarizer,
	reportSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if reportSchedule != "" {
		jm.statusReportJob = NewOrderStatusReportJob(summaryHandler, reportSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.statusReportJob == nil {
		return nil
	}

	if err := jm.statusReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start order status report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.statusReportJob != nil {
		jm.statusReportJob.Stop()
	}
}
