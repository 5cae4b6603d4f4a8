package commands

import (
	"context"
	"fmt"
	"time"

	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/core/ports"
)

// RegisterCourierCommandHandler enrolls couriers on the roster. Only
// operators may enroll.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	admins     AdminRegistry
	reporter   ports.AuditReporter
}

// NewRegisterCourierCommandHandler creates a handler for courier enrollment.
func NewRegisterCourierCommandHandler(
	uowFactory CourierUoWFactory,
	admins AdminRegistry,
	reporter ports.AuditReporter,
) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		reporter:   reporter,
	}
}

// Handle enrolls the courier with an empty earnings ledger.
func (h *RegisterCourierCommandHandler) Handle(ctx context.Context, cmd RegisterCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !h.admins.IsAdmin(cmd.AdminID()) {
		return ErrNotAuthorized
	}

	c, err := courier.NewCourier(cmd.ChatID(), cmd.Name(), cmd.Phone(), time.Now())
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

	courierRepo := uow.CourierRepository()
	exists, err := courierRepo.Exists(ctx, cmd.ChatID())
	if err != nil {
		return err
	}
	if exists {
		return ErrCourierAlreadyRegistered
	}

	if err = courierRepo.Add(ctx, c); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.reporter.Report(ctx, ports.AuditEvent{
		Kind:       "COURIER ENROLLED",
		OccurredAt: time.Now().UTC(),
		Details:    fmt.Sprintf("courier %s (%d) enrolled by operator %d", cmd.Name(), cmd.ChatID(), cmd.AdminID()),
	})

	return nil
}
