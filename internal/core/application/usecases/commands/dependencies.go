package commands

import (
	"context"
	"errors"

	"foodbot/internal/core/domain/model/order"
)

// Sentinel errors shared by command handlers. Inbound adapters map them to
// user-facing feedback.
var (
	// ErrNotAuthorized is returned when the acting chat user may not
	// perform the operation.
	ErrNotAuthorized = errors.New("actor is not authorized for this operation")

	// ErrCodeMismatch is returned when a submitted confirmation code does
	// not match the order's code. The confirmation session stays open.
	ErrCodeMismatch = errors.New("confirmation code does not match")

	// ErrReceiptNotExpected is returned when a receipt arrives outside a
	// card payment handshake.
	ErrReceiptNotExpected = errors.New("no receipt is expected right now")

	// ErrCourierAlreadyRegistered is returned when enrolling a chat user
	// who is already on the courier roster.
	ErrCourierAlreadyRegistered = errors.New("courier is already registered")
)

// ExpiryScheduler arms and disarms the per-order cancellation window timer.
// Scheduling is idempotent per order; canceling an unknown order is a no-op.
type ExpiryScheduler interface {
	Schedule(orderNumber int)
	Cancel(orderNumber int)
}

// AdminRegistry answers whether a chat user is an operator.
type AdminRegistry interface {
	IsAdmin(chatID int64) bool
}

// OrderNotifier synchronizes chat views after a committed transition and
// sends one-off notifications. Implementations never fail the caller:
// messaging problems are logged, not propagated.
type OrderNotifier interface {
	Sync(ctx context.Context, o *order.Order)
	Notify(ctx context.Context, chatID int64, text string)
}
