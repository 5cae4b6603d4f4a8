package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a courier declaring an order handed
// over, which starts the verification handshake.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	courierID   int64

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to start delivery confirmation.
func NewConfirmDeliveryCommand(orderNumber int, courierID int64) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return ConfirmDeliveryCommand{}, errs.NewValueIsRequiredError("order number")
	}
	if courierID == 0 {
		return ConfirmDeliveryCommand{}, errs.NewValueIsRequiredError("courier id")
	}
	cmd.orderNumber = orderNumber
	cmd.courierID = courierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderNumber returns the order being handed over.
func (c ConfirmDeliveryCommand) OrderNumber() int {
	return c.orderNumber
}

// CourierID returns the confirming courier's chat actor id.
func (c ConfirmDeliveryCommand) CourierID() int64 {
	return c.courierID
}
