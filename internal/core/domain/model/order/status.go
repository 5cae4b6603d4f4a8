package order

import (
	"errors"
	"fmt"

	"foodbot/internal/pkg/errs"
)

// ErrStatusConflict is returned when a transition is requested while the
// order is not in the required status. Handlers surface it to the acting
// party as a "not available" alert, without mutating anything.
var ErrStatusConflict = errors.New("order is not available in its current status")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Pending ──> Published ──> Accepted ──> Delivered
//	               ^              │
//	               └──────────────┘
//	            (courier return)
//
// Any non-terminal status can additionally move to Canceled.
// Delivered and Canceled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after checkout. The order is inside its
	// cancellation window; an expiry task will publish it when the window
	// closes.
	Pending

	// Published means the order is announced on the dispatch channel and
	// waiting for a courier to accept it.
	Published

	// Accepted means a courier has taken the order and is delivering it.
	Accepted

	// Delivered is the terminal success status.
	Delivered

	// Canceled is the terminal status for customer or admin cancellation.
	// Canceled orders are retained for audit, never removed.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Published: "Published",
		Accepted:  "Accepted",
		Delivered: "Delivered",
		Canceled:  "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Published: "Published",
		Accepted:  "Accepted",
		Delivered: "Delivered",
		Canceled:  "Canceled",
	}
}

// ParseStatus restores a Status from its persisted string form.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// Publish transitions the status to Published.
//
// Valid transitions:
//   - Pending -> Published (expiry fired, or admin finalized the order)
//
// Returns ErrStatusConflict-wrapped error from any other status, which makes
// a late-firing expiry task against an already canceled order a harmless
// no-op.
func (s Status) Publish() (Status, error) {
	if s != Pending {
		return Unknown, fmt.Errorf("%w: cannot publish from %s", ErrStatusConflict, s)
	}
	return Published, nil
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Published -> Accepted (courier takes the order)
//
// Two couriers racing for the same order means the second Accept sees
// Accepted and fails here.
func (s Status) Accept() (Status, error) {
	if s != Published {
		return Unknown, fmt.Errorf("%w: cannot accept from %s", ErrStatusConflict, s)
	}
	return Accepted, nil
}

// Return transitions the status back to Published.
//
// Valid transitions:
//   - Accepted -> Published (assigned courier hands the order back)
func (s Status) Return() (Status, error) {
	if s != Accepted {
		return Unknown, fmt.Errorf("%w: cannot return from %s", ErrStatusConflict, s)
	}
	return Published, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Accepted -> Delivered (handover confirmed)
//
// Delivered is terminal.
func (s Status) Deliver() (Status, error) {
	if s != Accepted {
		return Unknown, fmt.Errorf("%w: cannot deliver from %s", ErrStatusConflict, s)
	}
	return Delivered, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions:
//   - any non-terminal status -> Canceled
//
// Delivered orders can never be canceled; canceling a Canceled order is
// rejected as already done.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, fmt.Errorf("%w: cannot cancel from %s", ErrStatusConflict, s)
	}
	return Canceled, nil
}
