package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a courier taking a published order from the
// dispatch channel.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	courierID   int64

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for the courier to take the order.
func NewAcceptOrderCommand(orderNumber int, courierID int64) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setCourierID(courierID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderNumber returns the order being taken.
func (c AcceptOrderCommand) OrderNumber() int {
	return c.orderNumber
}

// CourierID returns the taking courier's chat actor id.
func (c AcceptOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c *AcceptOrderCommand) setOrderNumber(orderNumber int) error {
	if orderNumber <= 0 {
		return errs.NewValueIsRequiredError("order number")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *AcceptOrderCommand) setCourierID(courierID int64) error {
	if courierID == 0 {
		return errs.NewValueIsRequiredError("courier id")
	}
	c.courierID = courierID
	return nil
}
