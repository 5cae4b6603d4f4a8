package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"foodbot/internal/core/application/usecases/queries"
	"foodbot/internal/core/ports"
)

// AuditDigestJob posts an hourly order summary to the audit sink: counts
// and revenue per status over the trailing 24 hours.
type AuditDigestJob struct {
	stats    queries.GetOrderStatsQueryHandler
	reporter ports.AuditReporter
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAuditDigestJob creates the hourly digest job.
func NewAuditDigestJob(
	stats queries.GetOrderStatsQueryHandler,
	reporter ports.AuditReporter,
	logger *slog.Logger,
) *AuditDigestJob {
	return &AuditDigestJob{
		stats:    stats,
		reporter: reporter,
		cron:     cron.New(),
		logger:   logger.With("component", "audit_digest_job"),
	}
}

// Start begins posting the digest at the top of every hour.
func (j *AuditDigestJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("audit digest job started (hourly)")
	return nil
}

// Stop stops the digest job.
func (j *AuditDigestJob) Stop() {
	j.cron.Stop()
	j.logger.Info("audit digest job stopped")
}

func (j *AuditDigestJob) run(ctx context.Context) {
	query, err := queries.NewGetOrderStatsQuery(time.Now().Add(-24 * time.Hour))
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to build stats query", "error", err)
		return
	}

	stats, err := j.stats.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to collect order stats", "error", err)
		return
	}
	if len(stats) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Orders in the last 24h:\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "  %s: %d (revenue %d)\n", s.Status, s.Count, s.Revenue)
	}

	j.reporter.Report(ctx, ports.AuditEvent{
		Kind:       "DIGEST",
		OccurredAt: time.Now().UTC(),
		Details:    b.String(),
	})
}
