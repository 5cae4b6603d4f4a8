package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/application/session"
	"foodbot/internal/core/ports"
)

// SubmitReceiptCommandHandler records the card payment receipt and completes
// the delivery. The receipt photo reference goes to the audit sink.
type SubmitReceiptCommandHandler struct {
	sessions  *session.Registry
	reporter  ports.AuditReporter
	finalizer deliveryFinalizer
}

// NewSubmitReceiptCommandHandler creates a handler for receipt submission.
func NewSubmitReceiptCommandHandler(
	uowFactory UoWFactory,
	sessions *session.Registry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) SubmitReceiptCommandHandler {
	return SubmitReceiptCommandHandler{
		sessions: sessions,
		reporter: reporter,
		finalizer: deliveryFinalizer{
			uowFactory: uowFactory,
			sessions:   sessions,
			notifier:   notifier,
			reporter:   reporter,
		},
	}
}

// Handle records the receipt and finalizes the delivery. Returns
// ErrReceiptNotExpected when the courier's handshake is not at the receipt
// step.
func (h *SubmitReceiptCommandHandler) Handle(ctx context.Context, cmd SubmitReceiptCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, ok := h.sessions.Get(cmd.CourierID())
	if !ok {
		return session.ErrNoSession
	}
	if s.Mode != session.ModeAwaitingReceipt {
		return ErrReceiptNotExpected
	}

	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "RECEIPT",
		OrderNumber: s.OrderNumber,
		OccurredAt:  time.Now().UTC(),
		Details: fmt.Sprintf("order #%d card payment receipt from courier %d, photo %s",
			s.OrderNumber, cmd.CourierID(), cmd.PhotoID()),
	})

	return h.finalizer.finalize(ctx, s.OrderNumber, cmd.CourierID())
}
