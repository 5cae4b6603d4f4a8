package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// ProposeEditCommandHandler stages operator item changes. The staged edit
// shows up on the customer's card with approve/reject buttons; nothing else
// changes until the customer decides.
type ProposeEditCommandHandler struct {
	uowFactory OrderUoWFactory
	admins     AdminRegistry
	notifier   OrderNotifier
	reporter   ports.AuditReporter
}

// NewProposeEditCommandHandler creates a handler for edit proposals.
func NewProposeEditCommandHandler(
	uowFactory OrderUoWFactory,
	admins AdminRegistry,
	notifier OrderNotifier,
	reporter ports.AuditReporter,
) ProposeEditCommandHandler {
	return ProposeEditCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		notifier:   notifier,
		reporter:   reporter,
	}
}

// Handle stages the edit. Returns ErrNotAuthorized for non-operators.
func (h *ProposeEditCommandHandler) Handle(ctx context.Context, cmd ProposeEditCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !h.admins.IsAdmin(cmd.AdminID()) {
		return ErrNotAuthorized
	}

	edit, err := order.NewProposedEdit(cmd.Items(), cmd.Total(), cmd.AdminID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = o.StageEdit(edit); err != nil {
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
		Kind:        "EDIT PROPOSED",
		OrderNumber: o.Number(),
		OccurredAt:  time.Now().UTC(),
		Details: fmt.Sprintf("order #%d change proposed by operator %d, new total %d",
			o.Number(), cmd.AdminID(), cmd.Total()),
	})

	return nil
}
