package courier

import (
	"errors"
	"time"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to register a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a chat user enrolled on the courier roster.
// It is an aggregate root that manages courier identity and delivery earnings.
//
// Business rules:
//   - A courier is identified by their chat actor id
//   - The name must be non-empty; the phone is normalized
//   - Every delivered order credits the earnings ledger exactly once
type Courier struct {
	// chatID is the courier's chat actor id and aggregate identity.
	chatID int64
	// name is the human-readable name shown in dispatch messages.
	name string
	// phone is the courier's normalized contact number.
	phone kernel.Phone
	// registeredAt is when the courier joined the roster.
	registeredAt time.Time
	// ledger accumulates delivery earnings.
	ledger Ledger
	// guard ensures the courier was properly constructed.
	guard guard.ConstructorGuard
}

// NewCourier registers a new courier on the roster with an empty ledger.
//
// Parameters:
//   - chatID: the courier's chat actor id (must be non-zero)
//   - name: human-readable name (must be non-empty)
//   - phone: normalized contact number
//   - registeredAt: enrollment time (stored as UTC)
//
// Returns a validation error if any parameter is invalid.
func NewCourier(chatID int64, name string, phone kernel.Phone, registeredAt time.Time) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setChatID(chatID),
		c.setName(name),
		c.setPhone(phone),
		c.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including the accumulated earnings ledger.
func RestoreCourier(
	chatID int64,
	name string,
	phone kernel.Phone,
	registeredAt time.Time,
	ledger Ledger,
) (*Courier, error) {
	c, err := NewCourier(chatID, name, phone, registeredAt)
	if err != nil {
		return nil, err
	}

	if err = ledger.Validate(); err != nil {
		return nil, err
	}
	c.ledger = ledger

	return c, nil
}

// IsEqual compares two couriers by their chat actor ids.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.chatID == other.chatID
}

// Validate checks if the Courier was properly constructed using the
// NewCourier constructor. The zero value of Courier is invalid.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ChatID returns the courier's chat actor id.
func (c *Courier) ChatID() int64 {
	return c.chatID
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's normalized contact number.
func (c *Courier) Phone() kernel.Phone {
	return c.phone
}

// RegisteredAt returns when the courier joined the roster.
func (c *Courier) RegisteredAt() time.Time {
	return c.registeredAt
}

// Ledger returns the courier's earnings ledger.
func (c *Courier) Ledger() Ledger {
	return c.ledger
}

// CreditDelivery records a completed delivery on the earnings ledger.
// The order total is added to the running total and the delivery is appended
// to the history.
func (c *Courier) CreditDelivery(orderNumber int, amount int, deliveredAt time.Time) error {
	return c.ledger.Credit(orderNumber, amount, deliveredAt)
}

func (c *Courier) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	c.chatID = chatID
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *Courier) setRegisteredAt(registeredAt time.Time) error {
	if registeredAt.IsZero() {
		return errs.NewValueIsRequiredError("registered at")
	}
	c.registeredAt = registeredAt.UTC()
	return nil
}
