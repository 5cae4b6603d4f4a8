package order

import (
	"errors"
	"fmt"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

// ErrProposedEditIsNotConstructed is returned when a ProposedEdit was not
// created via NewProposedEdit.
var ErrProposedEditIsNotConstructed = errors.New(
	"ProposedEdit must be created via NewProposedEdit constructor")

// ProposedEdit is an admin-staged replacement of an order's items and total,
// waiting for the customer's decision. Staging an edit never changes the
// order's status; only explicit approval merges it and only explicit
// rejection discards it.
type ProposedEdit struct {
	items      []Item
	total      int
	proposedBy int64

	guard guard.ConstructorGuard
}

// NewProposedEdit creates a staged edit.
// Items must be non-empty and valid, total positive, and the proposer known.
func NewProposedEdit(items []Item, total int, proposedBy int64) (ProposedEdit, error) {
	if len(items) == 0 {
		return ProposedEdit{}, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return ProposedEdit{}, err
		}
	}
	if total <= 0 {
		return ProposedEdit{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is not greater than 0", total))
	}
	if proposedBy == 0 {
		return ProposedEdit{}, errs.NewValueIsRequiredError("proposer id")
	}

	return ProposedEdit{
		items:      append([]Item(nil), items...),
		total:      total,
		proposedBy: proposedBy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the edit was created through NewProposedEdit.
func (e ProposedEdit) Validate() error {
	return e.guard.Validate(ErrProposedEditIsNotConstructed)
}

// Items returns a copy of the proposed order lines.
func (e ProposedEdit) Items() []Item {
	return append([]Item(nil), e.items...)
}

// Total returns the proposed total in integer currency units.
func (e ProposedEdit) Total() int {
	return e.total
}

// ProposedBy returns the id of the admin who staged the edit.
func (e ProposedEdit) ProposedBy() int64 {
	return e.proposedBy
}
