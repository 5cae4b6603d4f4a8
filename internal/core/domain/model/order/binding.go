package order

import (
	"fmt"

	"foodbot/internal/pkg/errs"
)

// Role identifies one chat surface bound to an order. Each role holds at most
// one live message binding per order; rebinding a role retires the previous
// message first.
type Role string

const (
	// RoleCustomer is the customer's own confirmation message.
	RoleCustomer Role = "customer"
	// RoleCourier is the delivery-instructions message sent to the assigned courier.
	RoleCourier Role = "courier"
	// RoleChannel is the announcement on the dispatch channel.
	RoleChannel Role = "dispatch-channel"
	// RoleAudit is the structured report on the audit surface.
	RoleAudit Role = "audit-report"
	// RoleEditSession is the customer-facing approval prompt of a staged item edit.
	RoleEditSession Role = "admin-edit-session"
)

// Validate checks that the role is one of the defined chat surfaces.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleCourier, RoleChannel, RoleAudit, RoleEditSession:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid message role", string(r)))
	}
}

// MessageBinding points at one concrete gateway message so later transitions
// can edit or delete it. A zero binding is invalid.
type MessageBinding struct {
	chatID    int64
	messageID int
}

// NewMessageBinding creates a binding for a delivered gateway message.
func NewMessageBinding(chatID int64, messageID int) (MessageBinding, error) {
	if chatID == 0 {
		return MessageBinding{}, errs.NewValueIsRequiredError("chat id")
	}
	if messageID == 0 {
		return MessageBinding{}, errs.NewValueIsRequiredError("message id")
	}
	return MessageBinding{chatID: chatID, messageID: messageID}, nil
}

// ChatID returns the chat the bound message lives in.
func (b MessageBinding) ChatID() int64 {
	return b.chatID
}

// MessageID returns the message identifier within the chat.
func (b MessageBinding) MessageID() int {
	return b.messageID
}

// IsZero reports whether the binding is unset.
func (b MessageBinding) IsZero() bool {
	return b.chatID == 0 && b.messageID == 0
}
