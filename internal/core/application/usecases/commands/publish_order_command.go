package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrPublishOrderCommandIsNotConstructed = errors.New(
	"PublishOrderCommand must be created via NewPublishOrderCommand constructor",
)

// PublishOrderCommand closes an order's cancellation window and offers it to
// couriers. Fired by the window timer, or early by an admin override.
type PublishOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber int

	guard guard.ConstructorGuard
}

// NewPublishOrderCommand creates a command to publish the given order.
func NewPublishOrderCommand(orderNumber int) (PublishOrderCommand, error) {
	cmd := PublishOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return PublishOrderCommand{}, errs.NewValueIsRequiredError("order number")
	}
	cmd.orderNumber = orderNumber
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOrderCommand) Validate() error {
	return c.guard.Validate(ErrPublishOrderCommandIsNotConstructed)
}

// OrderNumber returns the order to publish.
func (c PublishOrderCommand) OrderNumber() int {
	return c.orderNumber
}
