package kernel

import (
	"strings"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

// defaultCountryCode is prefixed to bare nine-digit subscriber numbers.
const defaultCountryCode = "998"

// ErrPhoneIsNotConstructed is returned when attempting to use an improperly
// initialized Phone. Phones must be created via NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is a customer contact number normalized to international form
// ("+<country code><subscriber number>"). Chat clients deliver numbers in a
// mix of formats, with or without the plus sign or country code; Phone
// canonicalizes them once so couriers always see a dialable number.
type Phone struct {
	value string

	guard guard.ConstructorGuard
}

// NewPhone normalizes and validates a raw phone string.
// Returns an error if the input contains no digits.
func NewPhone(raw string) (Phone, error) {
	digits := extractDigits(raw)
	if digits == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	// Bare subscriber numbers get the default country code.
	if len(digits) == 9 {
		digits = defaultCountryCode + digits
	}

	return Phone{value: "+" + digits, guard: guard.NewConstructorGuard()}, nil
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate ensures the Phone was created through NewPhone.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

// String returns the normalized number.
func (p Phone) String() string {
	return p.value
}
