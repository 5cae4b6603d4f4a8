package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/application/messaging"
	"foodbot/internal/core/application/session"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders. Customers may cancel their own
// order only while it is still pending; operators may cancel any order that
// has not been delivered. The record is kept with Canceled status.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	admins     AdminRegistry
	scheduler  ExpiryScheduler
	sessions   *session.Registry
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	admins AdminRegistry,
	scheduler ExpiryScheduler,
	sessions *session.Registry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		scheduler:  scheduler,
		sessions:   sessions,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle cancels the order, disarms its window timer and retires its chat
// views. An operator cancellation additionally notifies the customer.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	byAdmin := h.admins.IsAdmin(cmd.ActorID())
	switch {
	case byAdmin:
		// Operators may cancel anything not yet terminal.
	case o.UserID() == cmd.ActorID():
		if o.Status() != order.Pending {
			return fmt.Errorf("%w: the cancellation window has closed", order.ErrStatusConflict)
		}
	default:
		return ErrNotAuthorized
	}

	if err = o.Cancel(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(o.Number())
	// A courier mid-handshake on this order would otherwise stay locked in
	// the dead session.
	if courierID := o.Courier(); courierID != nil {
		h.sessions.CloseFor(*courierID, o.Number())
	}
	h.notifier.Sync(ctx, o)
	if byAdmin && cmd.ActorID() != o.UserID() {
		h.notifier.Notify(ctx, o.UserID(), messaging.AdminCanceledText(o))
	}
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "CANCELED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details:     fmt.Sprintf("order #%d canceled by user %d", o.Number(), cmd.ActorID()),
	})

	return nil
}
