package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrSubmitReceiptCommandIsNotConstructed = errors.New(
	"SubmitReceiptCommand must be created via NewSubmitReceiptCommand constructor",
)

// SubmitReceiptCommand carries the payment receipt photo a courier sent
// during a card payment handshake.
type SubmitReceiptCommand struct { //nolint:recvcheck //using for validation
	courierID int64
	photoID   string

	guard guard.ConstructorGuard
}

// NewSubmitReceiptCommand creates a command to record a receipt photo.
func NewSubmitReceiptCommand(courierID int64, photoID string) (SubmitReceiptCommand, error) {
	cmd := SubmitReceiptCommand{
		guard: guard.NewConstructorGuard(),
	}
	if courierID == 0 {
		return SubmitReceiptCommand{}, errs.NewValueIsRequiredError("courier id")
	}
	if photoID == "" {
		return SubmitReceiptCommand{}, errs.NewValueIsRequiredError("photo id")
	}
	cmd.courierID = courierID
	cmd.photoID = photoID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReceiptCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReceiptCommandIsNotConstructed)
}

// CourierID returns the submitting courier's chat actor id.
func (c SubmitReceiptCommand) CourierID() int64 {
	return c.courierID
}

// PhotoID returns the chat platform's file id of the receipt photo.
func (c SubmitReceiptCommand) PhotoID() string {
	return c.photoID
}
