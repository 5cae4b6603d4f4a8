package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrSubmitOTPCommandIsNotConstructed = errors.New(
	"SubmitOTPCommand must be created via NewSubmitOTPCommand constructor",
)

// SubmitOTPCommand carries a confirmation code the courier relayed from the
// customer during an open handshake.
type SubmitOTPCommand struct { //nolint:recvcheck //using for validation
	courierID int64
	code      string

	guard guard.ConstructorGuard
}

// NewSubmitOTPCommand creates a command to check a relayed code.
func NewSubmitOTPCommand(courierID int64, code string) (SubmitOTPCommand, error) {
	cmd := SubmitOTPCommand{
		guard: guard.NewConstructorGuard(),
	}
	if courierID == 0 {
		return SubmitOTPCommand{}, errs.NewValueIsRequiredError("courier id")
	}
	if code == "" {
		return SubmitOTPCommand{}, errs.NewValueIsRequiredError("code")
	}
	cmd.courierID = courierID
	cmd.code = code
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOTPCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOTPCommandIsNotConstructed)
}

// CourierID returns the submitting courier's chat actor id.
func (c SubmitOTPCommand) CourierID() int64 {
	return c.courierID
}

// Code returns the relayed confirmation code.
func (c SubmitOTPCommand) Code() string {
	return c.code
}
