package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/application/session"
	"foodbot/internal/core/ports"
)

// ReturnOrderCommandHandler puts an accepted order back on offer. The
// republished channel message carries the return count so couriers see the
// order's history.
type ReturnOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	sessions   *session.Registry
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewReturnOrderCommandHandler creates a handler for order returns.
func NewReturnOrderCommandHandler(
	uowFactory OrderUoWFactory,
	sessions *session.Registry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle returns the order to the channel. Only the assigned courier may
// return; anybody else gets ErrNotAssignedCourier from the aggregate.
func (h *ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) error {
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

	if err = o.Return(cmd.CourierID()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// A return during an open handshake abandons that confirmation.
	h.sessions.CloseFor(cmd.CourierID(), o.Number())
	h.notifier.Sync(ctx, o)
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "RETURNED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details: fmt.Sprintf("order #%d returned by courier %d, return %d",
			o.Number(), cmd.CourierID(), o.ReturnedCount()),
	})

	return nil
}
