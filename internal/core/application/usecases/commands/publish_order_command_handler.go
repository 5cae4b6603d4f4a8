package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/ports"
)

// PublishOrderCommandHandler moves a pending order into the dispatch
// channel. Publishing an order that was already canceled (the timer lost
// the race) fails with a status conflict the caller can treat as benign.
type PublishOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  ExpiryScheduler
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewPublishOrderCommandHandler creates a handler for order publication.
func NewPublishOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler ExpiryScheduler,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) PublishOrderCommandHandler {
	return PublishOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle publishes the order. Disarms the window timer so an admin override
// cannot be followed by a duplicate timer publish.
func (h *PublishOrderCommandHandler) Handle(ctx context.Context, cmd PublishOrderCommand) error {
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

	if err = o.Publish(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Cancel(o.Number())
	h.notifier.Sync(ctx, o)
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "PUBLISHED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details:     fmt.Sprintf("order #%d offered to couriers", o.Number()),
	})

	return nil
}
