// Package trigger defines the tagged lifecycle triggers that drive order
// transitions, and the dispatcher that routes them to their handlers.
// Inline button taps, the expiry timer and admin overrides all arrive here
// as the same typed value, so every transition funnels through one place.
package trigger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a trigger asks the system to do.
type Kind int

const (
	KindUnknown Kind = iota
	// KindPublish moves a pending order to the dispatch channel. Fired by
	// the expiry timer or an admin override.
	KindPublish
	// KindAccept assigns the order to the tapping courier.
	KindAccept
	// KindReturn hands an accepted order back to the channel.
	KindReturn
	// KindDeliver starts the delivery confirmation handshake.
	KindDeliver
	// KindCancel cancels the order (customer inside the window, admins any
	// time before delivery).
	KindCancel
	// KindApproveEdit applies an admin-proposed item change.
	KindApproveEdit
	// KindRejectEdit discards an admin-proposed item change.
	KindRejectEdit
	// KindOtpSubmit checks a courier-entered confirmation code against the
	// order held by the courier's open handshake. Args[0] is the code.
	KindOtpSubmit
	// KindReceiptSubmit attaches a payment receipt to a card order awaiting
	// one. Args[0] is the photo file reference.
	KindReceiptSubmit
	// KindEditPropose records an admin-proposed item change for customer
	// review. Args[0] is the new total, Args[1:] are "name:qty" item specs.
	KindEditPropose
)

var kindStrings = map[Kind]string{
	KindPublish:       "publish",
	KindAccept:        "accept",
	KindReturn:        "return",
	KindDeliver:       "deliver",
	KindCancel:        "cancel",
	KindApproveEdit:   "approve-edit",
	KindRejectEdit:    "reject-edit",
	KindOtpSubmit:     "otp-submit",
	KindReceiptSubmit: "receipt-submit",
	KindEditPropose:   "edit-propose",
}

// ErrUnknownKind is returned when parsing an unrecognized trigger tag.
var ErrUnknownKind = errors.New("unknown trigger kind")

// String returns the wire tag of the kind.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a wire tag back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, tag := range kindStrings {
		if tag == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Trigger is one routed lifecycle event.
type Trigger struct {
	// Kind is the requested transition.
	Kind Kind
	// OrderNumber is the subject order; zero for submissions whose order is
	// resolved through the courier's open session.
	OrderNumber int
	// Actor is the chat user who caused the trigger; zero for the timer.
	Actor int64
	// Args carries kind-specific payload, such as a confirmation code or a
	// receipt file reference. Empty for plain transition triggers.
	Args []string
}

// Encode renders the callback payload carried on inline buttons.
func Encode(kind Kind, orderNumber int) string {
	return kind.String() + ":" + strconv.Itoa(orderNumber)
}

// Parse decodes a callback payload produced by Encode.
func Parse(data string) (Kind, int, error) {
	tag, numStr, ok := strings.Cut(data, ":")
	if !ok {
		return KindUnknown, 0, fmt.Errorf("malformed trigger payload %q", data)
	}

	kind, err := ParseKind(tag)
	if err != nil {
		return KindUnknown, 0, err
	}

	number, err := strconv.Atoi(numStr)
	if err != nil || number <= 0 {
		return KindUnknown, 0, fmt.Errorf("malformed order number in trigger payload %q", data)
	}

	return kind, number, nil
}
