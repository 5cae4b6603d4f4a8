package commands

import (
	"context"

	"foodbot/internal/core/application/messaging"
	"foodbot/internal/core/application/session"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// SubmitOTPCommandHandler checks a relayed confirmation code against the
// order. A mismatch leaves the session open so the courier can retry; a
// match completes the delivery, except for card payments which still need a
// receipt photo.
type SubmitOTPCommandHandler struct {
	uowFactory UoWFactory
	sessions   *session.Registry
	notifier   OrderNotifier
	finalizer  deliveryFinalizer
}

// NewSubmitOTPCommandHandler creates a handler for code submission.
func NewSubmitOTPCommandHandler(
	uowFactory UoWFactory,
	sessions *session.Registry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) SubmitOTPCommandHandler {
	return SubmitOTPCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		notifier:   notifier,
		finalizer: deliveryFinalizer{
			uowFactory: uowFactory,
			sessions:   sessions,
			notifier:   notifier,
			reporter:   reporter,
		},
	}
}

// Handle verifies the code for the courier's open session.
func (h *SubmitOTPCommandHandler) Handle(ctx context.Context, cmd SubmitOTPCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, ok := h.sessions.Get(cmd.CourierID())
	if !ok || s.Mode != session.ModeAwaitingCode {
		return session.ErrNoSession
	}

	o, err := h.loadOrder(ctx, s.OrderNumber)
	if err != nil {
		return err
	}

	if !o.VerifyOTP(cmd.Code()) {
		h.notifier.Notify(ctx, cmd.CourierID(), messaging.CodeMismatchText(o))
		return ErrCodeMismatch
	}

	if o.Payment() == order.PaymentCard {
		if err = h.sessions.Advance(cmd.CourierID(), session.ModeAwaitingReceipt); err != nil {
			return err
		}
		h.notifier.Notify(ctx, cmd.CourierID(), messaging.ReceiptPromptText(o))
		return nil
	}

	return h.finalizer.finalize(ctx, s.OrderNumber, cmd.CourierID())
}

func (h *SubmitOTPCommandHandler) loadOrder(ctx context.Context, number int) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, number)
}
