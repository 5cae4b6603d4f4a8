// Package jobs provides background tasks: the per-order cancellation window
// timer, and the periodic audit digest built on github.com/robfig/cron/v3.
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(scheduler, digestJob, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The expiry scheduler is not cron-based: every order gets its own armed
// timer so publishes land exactly when the order's own window closes, and a
// cancellation disarms just that order's timer.
package jobs
