package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. The actor may
// be the customer (only while the cancellation window is open) or an
// operator (any time before delivery).
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	actorID     int64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel the given order.
func NewCancelOrderCommand(orderNumber int, actorID int64) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("order number")
	}
	if actorID == 0 {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("actor id")
	}
	cmd.orderNumber = orderNumber
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to cancel.
func (c CancelOrderCommand) OrderNumber() int {
	return c.orderNumber
}

// ActorID returns the chat user requesting the cancellation.
func (c CancelOrderCommand) ActorID() int64 {
	return c.actorID
}
