package order

import (
	"errors"
	"fmt"
	"time"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotAssignedCourier is returned when a courier acts on an order that
	// is assigned to somebody else (or to nobody).
	ErrNotAssignedCourier = errors.New("order is assigned to a different courier")

	// ErrNoProposedEdit is returned when resolving an item edit that was
	// never staged (or was already resolved).
	ErrNoProposedEdit = errors.New("order has no proposed edit")
)

// otpLength is the fixed length of delivery confirmation codes.
const otpLength = 5

// Order is the aggregate root tracking a confirmed cart through its lifecycle
// from checkout to delivery or cancellation.
//
// Order follows these invariants:
//   - Order numbers are positive and unique (allocation is the store's job)
//   - Status transitions follow the edges defined on Status
//   - A courier is set exactly while the order is Accepted
//   - The one-time code is generated once at checkout and never regenerated
//   - At most one live message binding exists per chat role
//   - A staged edit never implies a status change on its own
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods.
type Order struct {
	// number is the unique, monotonically increasing order identifier.
	number int

	// userID is the customer's chat actor id.
	userID int64

	// status is the current state in the order lifecycle.
	status Status

	// items is the ordered sequence of purchased lines.
	items []Item

	// total is the order total in integer currency units.
	total int

	// phone is the customer's normalized contact number.
	phone kernel.Phone

	// location is the delivery destination.
	location kernel.Location

	// createdAt is the checkout time in UTC.
	createdAt time.Time

	// payment is the method chosen at checkout.
	payment Payment

	// paid reports whether the order amount has been collected.
	paid bool

	// otp is the delivery confirmation code; empty when no courier-side
	// verification is required.
	otp string

	// courierID is the assigned courier (nil while unassigned).
	courierID *int64

	// returnedCount counts how many times couriers handed the order back.
	returnedCount int

	// bindings maps chat roles to their live gateway messages.
	bindings map[Role]MessageBinding

	// proposedEdit is an admin-staged item change awaiting the customer.
	proposedEdit *ProposedEdit

	// isConstructed ensures the order was created via a constructor.
	isConstructed bool
}

// NewOrder creates a freshly checked-out order in Pending status.
//
// Parameters:
//   - number: unique positive order number allocated by the store
//   - userID: the customer's chat actor id
//   - items: non-empty, validated order lines
//   - total: positive order total in integer currency units
//   - phone: normalized customer phone
//   - location: delivery destination
//   - payment: payment method chosen at checkout
//   - otp: delivery confirmation code, or empty when no courier-side
//     verification will be required
//   - createdAt: checkout time (stored as UTC)
//
// Returns a validation error if any parameter is invalid.
func NewOrder(
	number int,
	userID int64,
	items []Item,
	total int,
	phone kernel.Phone,
	location kernel.Location,
	payment Payment,
	otp string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		bindings:      make(map[Role]MessageBinding),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setUserID(userID),
		o.setItems(items),
		o.setTotal(total),
		o.setPhone(phone),
		o.setLocation(location),
		o.setPayment(payment),
		o.setOTP(otp),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including lifecycle
// state that NewOrder never produces. It validates the same field invariants
// plus status/courier consistency.
func RestoreOrder(
	number int,
	userID int64,
	items []Item,
	total int,
	phone kernel.Phone,
	location kernel.Location,
	payment Payment,
	otp string,
	createdAt time.Time,
	status Status,
	paid bool,
	courierID *int64,
	returnedCount int,
	bindings map[Role]MessageBinding,
	proposedEdit *ProposedEdit,
) (*Order, error) {
	o, err := NewOrder(number, userID, items, total, phone, location, payment, otp, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if courierID != nil && status != Accepted && status != Delivered {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", status))
	}
	if returnedCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("returned count",
			fmt.Errorf("%d is negative", returnedCount))
	}
	if proposedEdit != nil {
		if err = proposedEdit.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.paid = paid
	o.courierID = courierID
	o.returnedCount = returnedCount
	o.proposedEdit = proposedEdit
	for role, b := range bindings {
		if err = role.Validate(); err != nil {
			return nil, err
		}
		o.bindings[role] = b
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their order numbers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.number == other.number
}

// Number returns the unique order number.
func (o *Order) Number() int {
	return o.number
}

// UserID returns the customer's chat actor id.
func (o *Order) UserID() int64 {
	return o.userID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the order total in integer currency units.
func (o *Order) Total() int {
	return o.total
}

// Phone returns the customer's normalized phone.
func (o *Order) Phone() kernel.Phone {
	return o.phone
}

// Location returns the delivery destination.
func (o *Order) Location() kernel.Location {
	return o.location
}

// CreatedAt returns the checkout time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Payment returns the payment method.
func (o *Order) Payment() Payment {
	return o.payment
}

// Paid reports whether the order amount has been collected.
func (o *Order) Paid() bool {
	return o.paid
}

// OTP returns the delivery confirmation code (empty when verification is not
// required).
func (o *Order) OTP() string {
	return o.otp
}

// RequiresVerification reports whether the handover must be confirmed with
// the one-time code before the order can be delivered.
func (o *Order) RequiresVerification() bool {
	return o.otp != ""
}

// Courier returns the assigned courier's id, or nil while unassigned.
func (o *Order) Courier() *int64 {
	return o.courierID
}

// AssignedTo reports whether the order is currently assigned to the courier.
func (o *Order) AssignedTo(courierID int64) bool {
	return o.courierID != nil && *o.courierID == courierID
}

// ReturnedCount returns how many times couriers handed the order back.
func (o *Order) ReturnedCount() int {
	return o.returnedCount
}

// ProposedEdit returns the staged item edit, or nil when none is pending.
func (o *Order) ProposedEdit() *ProposedEdit {
	return o.proposedEdit
}

// Publish moves the order from Pending to Published. The customer's
// cancellation window closes with this transition.
func (o *Order) Publish() error {
	newStatus, err := o.status.Publish()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Accept assigns the order to the accepting courier and moves it from
// Published to Accepted. The courier id must be known; authorization against
// the courier roster is the caller's job.
func (o *Order) Accept(courierID int64) error {
	if courierID == 0 {
		return errs.NewValueIsRequiredError("courier id")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Return hands an Accepted order back to the dispatch channel. Only the
// assigned courier may return; the return is counted and the assignment
// cleared.
func (o *Order) Return(courierID int64) error {
	if !o.AssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.Return()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.returnedCount++
	o.courierID = nil
	return nil
}

// Deliver finalizes an Accepted order and marks the amount as collected.
// Verification gating (code match, receipt artifact) happens before this
// call; Deliver itself only enforces the status edge and the assignment.
func (o *Order) Deliver(courierID int64) error {
	if !o.AssignedTo(courierID) {
		return ErrNotAssignedCourier
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paid = true
	return nil
}

// Cancel moves the order to Canceled from any non-terminal status.
// The order record is retained for audit; pending-only and not-delivered
// guards for customers and admins are enforced by the handlers.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// VerifyOTP compares a submitted code against the stored one.
// Returns false when no verification is required or the code mismatches.
func (o *Order) VerifyOTP(code string) bool {
	return o.otp != "" && code == o.otp
}

// StageEdit stages an admin-proposed item change for customer approval.
// Staging is allowed in any non-terminal status and replaces a previously
// staged edit; it never changes the order's status.
func (o *Order) StageEdit(edit ProposedEdit) error {
	if err := edit.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot edit from %s", ErrStatusConflict, o.status)
	}

	o.proposedEdit = &edit
	return nil
}

// ApproveEdit merges the staged edit into the order's items and total and
// clears it. Returns the applied edit so callers can notify the proposer.
func (o *Order) ApproveEdit() (ProposedEdit, error) {
	if o.proposedEdit == nil {
		return ProposedEdit{}, ErrNoProposedEdit
	}

	edit := *o.proposedEdit
	o.items = edit.Items()
	o.total = edit.Total()
	o.proposedEdit = nil
	return edit, nil
}

// RejectEdit discards the staged edit without touching items or total.
// Returns the discarded edit so callers can notify the proposer.
func (o *Order) RejectEdit() (ProposedEdit, error) {
	if o.proposedEdit == nil {
		return ProposedEdit{}, ErrNoProposedEdit
	}

	edit := *o.proposedEdit
	o.proposedEdit = nil
	return edit, nil
}

// Bind records the live gateway message for a chat role, replacing any
// previous binding for that role.
func (o *Order) Bind(role Role, binding MessageBinding) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if binding.IsZero() {
		return errs.NewValueIsRequiredError("message binding")
	}

	o.bindings[role] = binding
	return nil
}

// Binding returns the live binding for a chat role, if any.
func (o *Order) Binding(role Role) (MessageBinding, bool) {
	b, ok := o.bindings[role]
	return b, ok
}

// Unbind forgets the live binding for a chat role. Safe to call when no
// binding exists.
func (o *Order) Unbind(role Role) {
	delete(o.bindings, role)
}

// Bindings returns a copy of all live bindings, keyed by role.
func (o *Order) Bindings() map[Role]MessageBinding {
	out := make(map[Role]MessageBinding, len(o.bindings))
	for role, b := range o.bindings {
		out[role] = b
	}
	return out
}

func (o *Order) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID == 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setTotal(total int) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d is not greater than 0", total))
	}
	o.total = total
	return nil
}

func (o *Order) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	o.phone = phone
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setOTP(otp string) error {
	if otp == "" {
		return nil
	}
	if len(otp) != otpLength {
		return errs.NewValueIsInvalidErrorWithCause("otp",
			fmt.Errorf("code must be %d digits", otpLength))
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("otp",
				errors.New("code must be numeric"))
		}
	}
	o.otp = otp
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
