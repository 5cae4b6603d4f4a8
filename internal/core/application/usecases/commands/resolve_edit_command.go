package commands

import (
	"errors"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrResolveEditCommandIsNotConstructed = errors.New(
	"ResolveEditCommand must be created via NewResolveEditCommand constructor",
)

// ResolveEditCommand carries the customer's decision on a staged item
// change.
type ResolveEditCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	userID      int64
	approved    bool

	guard guard.ConstructorGuard
}

// NewResolveEditCommand creates a command to resolve a staged edit.
func NewResolveEditCommand(orderNumber int, userID int64, approved bool) (ResolveEditCommand, error) {
	cmd := ResolveEditCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return ResolveEditCommand{}, errs.NewValueIsRequiredError("order number")
	}
	if userID == 0 {
		return ResolveEditCommand{}, errs.NewValueIsRequiredError("user id")
	}
	cmd.orderNumber = orderNumber
	cmd.userID = userID
	cmd.approved = approved
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveEditCommand) Validate() error {
	return c.guard.Validate(ErrResolveEditCommandIsNotConstructed)
}

// OrderNumber returns the order whose edit is being resolved.
func (c ResolveEditCommand) OrderNumber() int {
	return c.orderNumber
}

// UserID returns the deciding customer's chat actor id.
func (c ResolveEditCommand) UserID() int64 {
	return c.userID
}

// Approved reports whether the customer accepted the change.
func (c ResolveEditCommand) Approved() bool {
	return c.approved
}
