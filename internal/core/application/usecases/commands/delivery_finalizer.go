package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/application/session"
	"foodbot/internal/core/ports"
)

// deliveryFinalizer completes an accepted order once verification passed:
// marks it delivered, credits the courier's ledger in the same transaction,
// closes the confirmation session and retires the chat views.
type deliveryFinalizer struct {
	uowFactory UoWFactory
	sessions   *session.Registry
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

func (f deliveryFinalizer) finalize(ctx context.Context, orderNumber int, courierID int64) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderNumber)
	if err != nil {
		return err
	}
	if err = o.Deliver(courierID); err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, courierID)
	if err != nil {
		return err
	}
	if err = c.CreditDelivery(o.Number(), o.Total(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	f.sessions.Close(courierID)
	f.notifier.Sync(ctx, o)
	f.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "DELIVERED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details: fmt.Sprintf("order #%d delivered by courier %d, earned %d (lifetime %d)",
			o.Number(), courierID, o.Total(), c.Ledger().Total()),
	})

	return nil
}
