package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all background work in the application: the
// per-order window timers and the periodic audit digest.
type JobManager struct {
	scheduler *ExpiryScheduler
	digest    *AuditDigestJob
	logger    *slog.Logger
}

// NewJobManager creates a job manager over the wired jobs.
func NewJobManager(scheduler *ExpiryScheduler, digest *AuditDigestJob, logger *slog.Logger) *JobManager {
	return &JobManager{
		scheduler: scheduler,
		digest:    digest,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll reconciles window timers left over from the previous run and
// starts the scheduled jobs. Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.scheduler.Reconcile(ctx); err != nil {
		return fmt.Errorf("failed to reconcile cancellation windows: %w", err)
	}

	if err := jm.digest.Start(); err != nil {
		jm.scheduler.Stop()
		return fmt.Errorf("failed to start audit digest job: %w", err)
	}

	return nil
}

// StopAll stops all background work gracefully.
func (jm *JobManager) StopAll() {
	jm.digest.Stop()
	jm.scheduler.Stop()
}
