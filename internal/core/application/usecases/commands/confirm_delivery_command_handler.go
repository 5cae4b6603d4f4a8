package commands

import (
	"context"
	"fmt"

	"foodbot/internal/core/application/messaging"
	"foodbot/internal/core/application/session"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// ConfirmDeliveryCommandHandler starts the delivery verification handshake.
// When the order carries a confirmation code the courier gets a prompt and
// an open session; orders without a code complete immediately. A courier
// confirms one delivery at a time.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	sessions   *session.Registry
	notifier   OrderNotifier
	finalizer  deliveryFinalizer
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	sessions *session.Registry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
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

// Handle begins (or completes) the delivery confirmation.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.loadOrder(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if !o.AssignedTo(cmd.CourierID()) {
		return order.ErrNotAssignedCourier
	}
	if o.Status() != order.Accepted {
		return fmt.Errorf("%w: cannot confirm delivery from %s", order.ErrStatusConflict, o.Status())
	}

	if !o.RequiresVerification() {
		return h.finalizer.finalize(ctx, cmd.OrderNumber(), cmd.CourierID())
	}

	if err = h.sessions.Open(cmd.CourierID(), cmd.OrderNumber(), session.ModeAwaitingCode); err != nil {
		return err
	}

	h.notifier.Notify(ctx, cmd.CourierID(), messaging.CodePromptText(o))
	return nil
}

func (h *ConfirmDeliveryCommandHandler) loadOrder(ctx context.Context, number int) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, number)
}
