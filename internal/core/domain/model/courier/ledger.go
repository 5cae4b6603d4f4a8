package courier

import (
	"fmt"
	"time"

	"foodbot/internal/pkg/errs"
)

// Delivery is a single earnings ledger entry: one completed order.
type Delivery struct {
	// OrderNumber identifies the delivered order.
	OrderNumber int
	// Amount is the order total credited, in integer currency units.
	Amount int
	// DeliveredAt is the completion time in UTC.
	DeliveredAt time.Time
}

// Ledger accumulates a courier's delivery earnings. The total always equals
// the sum of the recorded deliveries.
type Ledger struct {
	total      int
	deliveries []Delivery
}

// RestoreLedger reconstructs a ledger from persistence.
func RestoreLedger(total int, deliveries []Delivery) Ledger {
	return Ledger{
		total:      total,
		deliveries: append([]Delivery(nil), deliveries...),
	}
}

// Validate checks ledger consistency: non-negative entries summing to the total.
func (l Ledger) Validate() error {
	sum := 0
	for _, d := range l.deliveries {
		if d.OrderNumber <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("ledger",
				fmt.Errorf("delivery references order %d", d.OrderNumber))
		}
		if d.Amount <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("ledger",
				fmt.Errorf("delivery for order %d has amount %d", d.OrderNumber, d.Amount))
		}
		sum += d.Amount
	}
	if sum != l.total {
		return errs.NewValueIsInvalidErrorWithCause("ledger",
			fmt.Errorf("total %d does not match delivery sum %d", l.total, sum))
	}
	return nil
}

// Credit appends a delivery entry and adds the amount to the running total.
func (l *Ledger) Credit(orderNumber int, amount int, deliveredAt time.Time) error {
	if orderNumber <= 0 {
		return errs.NewValueIsRequiredError("order number")
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("delivered at")
	}

	l.deliveries = append(l.deliveries, Delivery{
		OrderNumber: orderNumber,
		Amount:      amount,
		DeliveredAt: deliveredAt.UTC(),
	})
	l.total += amount
	return nil
}

// Total returns the accumulated earnings in integer currency units.
func (l Ledger) Total() int {
	return l.total
}

// Deliveries returns a copy of the delivery history, oldest first.
func (l Ledger) Deliveries() []Delivery {
	return append([]Delivery(nil), l.deliveries...)
}
