package ports

import (
	"context"
	"time"
)

// AuditEvent is a single lifecycle fact reported to the audit sink.
type AuditEvent struct {
	// ID uniquely identifies the event for idempotent delivery.
	ID string
	// Kind tags the event category, e.g. "NEW ORDER" or "CANCELED".
	Kind string
	// OrderNumber is the subject order, zero for non-order events.
	OrderNumber int
	// OccurredAt is the event time in UTC.
	OccurredAt time.Time
	// Details is the rendered human-readable report body.
	Details string
}

// AuditReporter delivers lifecycle events to the audit sink (the
// super-admin's chat). Delivery is best effort: implementations log
// failures, callers never block the order flow on audit delivery.
type AuditReporter interface {
	Report(ctx context.Context, event AuditEvent)
}
