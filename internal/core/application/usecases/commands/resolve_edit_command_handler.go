package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/application/messaging"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// ResolveEditCommandHandler applies or discards a staged item change on the
// customer's decision and tells the proposing operator the outcome.
type ResolveEditCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewResolveEditCommandHandler creates a handler for edit resolution.
func NewResolveEditCommandHandler(
	uowFactory OrderUoWFactory,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) ResolveEditCommandHandler {
	return ResolveEditCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle resolves the staged edit. Only the order's customer may decide.
func (h *ResolveEditCommandHandler) Handle(ctx context.Context, cmd ResolveEditCommand) error {
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
	if o.UserID() != cmd.UserID() {
		return ErrNotAuthorized
	}

	var edit order.ProposedEdit
	if cmd.Approved() {
		edit, err = o.ApproveEdit()
	} else {
		edit, err = o.RejectEdit()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Sync(ctx, o)
	h.notifier.Notify(ctx, edit.ProposedBy(), messaging.EditResolvedText(o, cmd.Approved()))
	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:        "EDIT RESOLVED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details:     fmt.Sprintf("order #%d change approved=%t by customer", o.Number(), cmd.Approved()),
	})

	return nil
}
