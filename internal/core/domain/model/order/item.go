package order

import (
	"errors"
	"fmt"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a product name and a quantity.
// Pricing lives outside this system; the order carries only the final total.
type Item struct {
	name string
	qty  int

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
// The product name must be non-empty and the quantity positive.
func NewItem(name string, qty int) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if qty <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return Item{name: name, qty: qty, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Qty returns the ordered quantity.
func (i Item) Qty() int {
	return i.qty
}

// String renders the line the way chat surfaces show it, e.g. "Palov x2".
func (i Item) String() string {
	return fmt.Sprintf("%s x%d", i.name, i.qty)
}
