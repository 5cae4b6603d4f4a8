package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/ports"
)

// AcceptOrderCommandHandler assigns published orders to couriers. Two
// couriers racing for the same order are serialized by the transaction: the
// loser sees a status conflict and the channel offer disappears for both.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle assigns the order to the courier. Returns ErrNotAuthorized when the
// actor is not on the courier roster.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	enrolled, err := uow.CourierRepository().Exists(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotAuthorized
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = o.Accept(cmd.CourierID()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Sync(ctx, o)
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "ACCEPTED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details:     fmt.Sprintf("order #%d taken by courier %d", o.Number(), cmd.CourierID()),
	})

	return nil
}
