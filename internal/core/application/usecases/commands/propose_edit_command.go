package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrProposeEditCommandIsNotConstructed = errors.New(
	"ProposeEditCommand must be created via NewProposeEditCommand constructor",
)

// ProposeEditCommand stages an operator's item change on an order, to be
// approved or rejected by the customer.
type ProposeEditCommand struct { //nolint:recvcheck //using for validation
	orderNumber int
	adminID     int64
	items       []order.Item
	total       int

	guard guard.ConstructorGuard
}

// NewProposeEditCommand creates a command to stage an item change.
func NewProposeEditCommand(orderNumber int, adminID int64, items []order.Item, total int) (ProposeEditCommand, error) {
	cmd := ProposeEditCommand{
		guard: guard.NewConstructorGuard(),
	}
	if orderNumber <= 0 {
		return ProposeEditCommand{}, errs.NewValueIsRequiredError("order number")
	}
	if adminID == 0 {
		return ProposeEditCommand{}, errs.NewValueIsRequiredError("admin id")
	}
	// NewProposedEdit validates items and total.
	edit, err := order.NewProposedEdit(items, total, adminID)
	if err != nil {
		return ProposeEditCommand{}, err
	}
	cmd.orderNumber = orderNumber
	cmd.adminID = adminID
	cmd.items = edit.Items()
	cmd.total = edit.Total()
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeEditCommand) Validate() error {
	return c.guard.Validate(ErrProposeEditCommandIsNotConstructed)
}

// OrderNumber returns the order being edited.
func (c ProposeEditCommand) OrderNumber() int {
	return c.orderNumber
}

// AdminID returns the proposing operator's chat actor id.
func (c ProposeEditCommand) AdminID() int64 {
	return c.adminID
}

// Items returns the proposed replacement lines.
func (c ProposeEditCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Total returns the proposed replacement total.
func (c ProposeEditCommand) Total() int {
	return c.total
}
