package order

import (
	"fmt"

	"foodbot/internal/pkg/errs"
)

// Payment is the method the customer chose at checkout.
type Payment int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown Payment = iota

	// PaymentCash means the courier collects cash on handover.
	PaymentCash

	// PaymentCard means the customer pays by card; handover additionally
	// requires a receipt photo from the courier.
	PaymentCard
)

func getPaymentStrings() map[Payment]string {
	return map[Payment]string{
		PaymentCash: "cash",
		PaymentCard: "card",
	}
}

// ParsePayment restores a Payment from its persisted string form.
func ParsePayment(s string) (Payment, error) {
	for p, str := range getPaymentStrings() {
		if str == s {
			return p, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the Payment value is one of the defined methods.
func (p Payment) Validate() error {
	if _, ok := getPaymentStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}

// String returns the persisted name of the payment method.
func (p Payment) String() string {
	if str, ok := getPaymentStrings()[p]; ok {
		return str
	}
	return "unknown"
}
