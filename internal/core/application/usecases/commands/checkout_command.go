package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a customer confirming their cart: the moment a
// conversation becomes an order.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(userID, items, total, phone, location, order.PaymentCash)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	number, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	userID   int64
	items    []order.Item
	total    int
	phone    kernel.Phone
	location kernel.Location
	payment  order.Payment

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to place a new order.
// Validates that the customer, items, total, phone, location and payment
// method are all usable. Returns an error if any validation fails.
func NewCheckoutCommand(
	userID int64,
	items []order.Item,
	total int,
	phone kernel.Phone,
	location kernel.Location,
	payment order.Payment,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setItems(items),
		cmd.setTotal(total),
		cmd.setPhone(phone),
		cmd.setLocation(location),
		cmd.setPayment(payment),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// UserID returns the ordering customer's chat actor id.
func (c CheckoutCommand) UserID() int64 {
	return c.userID
}

// Items returns the confirmed cart lines.
func (c CheckoutCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Total returns the order total in integer currency units.
func (c CheckoutCommand) Total() int {
	return c.total
}

// Phone returns the customer's contact number.
func (c CheckoutCommand) Phone() kernel.Phone {
	return c.phone
}

// Location returns the delivery destination.
func (c CheckoutCommand) Location() kernel.Location {
	return c.location
}

// Payment returns the chosen payment method.
func (c CheckoutCommand) Payment() order.Payment {
	return c.payment
}

func (c *CheckoutCommand) setUserID(userID int64) error {
	if userID == 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	c.userID = userID
	return nil
}

func (c *CheckoutCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CheckoutCommand) setTotal(total int) error {
	if total <= 0 {
		return errs.NewValueIsInvalidError("total")
	}
	c.total = total
	return nil
}

func (c *CheckoutCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *CheckoutCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *CheckoutCommand) setPayment(payment order.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	c.payment = payment
	return nil
}
