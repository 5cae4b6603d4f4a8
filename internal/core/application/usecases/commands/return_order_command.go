package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrReturnOrderCommandIsNotConstructed = errors.New(
	"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
)

// ReturnOrderCommand represents a courier handing an accepted order back to
// the dispatch channel.
type ReturnOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	courierID   int64

	guard guard.ConstructorGuard
}

// NewReturnOrderCommand creates a command for the courier to return the order.
func NewReturnOrderCommand(orderNumber int, courierID int64) (ReturnOrderCommand, error) {
	cmd := ReturnOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return ReturnOrderCommand{}, errs.NewValueIsRequiredError("order number")
	}
	if courierID == 0 {
		return ReturnOrderCommand{}, errs.NewValueIsRequiredError("courier id")
	}
	cmd.orderNumber = orderNumber
	cmd.courierID = courierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

// OrderNumber returns the order being returned.
func (c ReturnOrderCommand) OrderNumber() int {
	return c.orderNumber
}

// CourierID returns the returning courier's chat actor id.
func (c ReturnOrderCommand) CourierID() int64 {
	return c.courierID
}
