package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/domain/services"
	"foodbot/internal/core/ports"
)

// CheckoutCommandHandler places new orders. It allocates the order number,
// generates the delivery confirmation code, persists the order in Pending
// status and arms the cancellation window timer.
type CheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
	otp        services.OTPGenerator
	scheduler  ExpiryScheduler
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewCheckoutCommandHandler creates a handler for order placement.
func NewCheckoutCommandHandler(
	uowFactory OrderUoWFactory,
	otp services.OTPGenerator,
	scheduler ExpiryScheduler,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		otp:        otp,
		scheduler:  scheduler,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle places the order and returns its allocated number.
// The customer card is posted and the publish timer armed only after the
// transaction commits.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	code, err := h.otp.Generate()
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return 0, err
	}

	o, err := order.NewOrder(
		number,
		cmd.UserID(),
		cmd.Items(),
		cmd.Total(),
		cmd.Phone(),
		cmd.Location(),
		cmd.Payment(),
		code,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.scheduler.Schedule(number)
	h.notifier.Sync(ctx, o)
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "NEW ORDER",
		OrderNumber: number,
		OccurredAt:  time.Now().UTC(),
		Details: fmt.Sprintf("order #%d placed by user %d, total %d, payment %s",
			number, cmd.UserID(), cmd.Total(), cmd.Payment()),
	})

	return number, nil
}
