// Package audit delivers lifecycle reports to the super-admin's chat.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"
)

// Reporter renders audit events as plain-text reports and posts them to a
// single audit chat through the message gateway. Delivery is best effort:
// failures are logged and never propagate into the order flow.
type Reporter struct {
	gateway ports.MessageGateway
	chatID  int64
	logger  *slog.Logger
}

// NewReporter creates an audit reporter posting to the given chat.
func NewReporter(gateway ports.MessageGateway, chatID int64, logger *slog.Logger) (*Reporter, error) {
	if gateway == nil {
		return nil, errs.NewValueIsRequiredError("gateway")
	}
	if chatID == 0 {
		return nil, errs.NewValueIsRequiredError("chatID")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Reporter{
		gateway: gateway,
		chatID:  chatID,
		logger:  logger.With("component", "audit-reporter"),
	}, nil
}

// Report posts the event to the audit chat.
func (r *Reporter) Report(ctx context.Context, event ports.AuditEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if _, err := r.gateway.Send(ctx, r.chatID, renderEvent(event), nil); err != nil {
		r.logger.Error("audit report delivery failed",
			"event_id", event.ID,
			"kind", event.Kind,
			"order", event.OrderNumber,
			"error", err)
		return
	}

	r.logger.Debug("audit report delivered",
		"event_id", event.ID,
		"kind", event.Kind,
		"order", event.OrderNumber)
}

func renderEvent(event ports.AuditEvent) string {
	return fmt.Sprintf("[%s] %s\n%s",
		event.Kind,
		event.OccurredAt.Format("2006-01-02 15:04:05 MST"),
		event.Details)
}
