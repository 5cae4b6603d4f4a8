package messaging

import (
	"fmt"
	"strings"

	"foodbot/internal/core/application/trigger"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// statusLabels are the customer-facing status names.
var statusLabels = map[order.Status]string{
	order.Pending:   "Waiting",
	order.Published: "Looking for a courier",
	order.Accepted:  "Courier on the way",
	order.Delivered: "Delivered",
	order.Canceled:  "Canceled",
}

// StatusLabel returns the customer-facing name of a status.
func StatusLabel(s order.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s.String()
}

func itemLines(o *order.Order) string {
	var b strings.Builder
	for _, item := range o.Items() {
		fmt.Fprintf(&b, "  %s\n", item)
	}
	return b.String()
}

// CustomerText renders the customer's order status card.
func CustomerText(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n\n%s\nTotal: %d\nPayment: %s\n", o.Number(), itemLines(o), o.Total(), o.Payment())
	if o.RequiresVerification() && !o.Status().IsTerminal() {
		fmt.Fprintf(&b, "Confirmation code: %s\nTell it to the courier on handover.\n", o.OTP())
	}
	if edit := o.ProposedEdit(); edit != nil {
		b.WriteString("\nAn operator proposed a change to your order:\n")
		for _, item := range edit.Items() {
			fmt.Fprintf(&b, "  %s\n", item)
		}
		fmt.Fprintf(&b, "New total: %d\n", edit.Total())
	}
	fmt.Fprintf(&b, "\nStatus: %s", StatusLabel(o.Status()))
	return b.String()
}

// CustomerButtons returns the inline actions on the customer card: cancel
// while the window is open, approve/reject while an edit is staged.
func CustomerButtons(o *order.Order) []ports.Button {
	var buttons []ports.Button
	if o.ProposedEdit() != nil && !o.Status().IsTerminal() {
		buttons = append(buttons,
			ports.Button{Label: "Approve change", Data: trigger.Encode(trigger.KindApproveEdit, o.Number())},
			ports.Button{Label: "Keep as is", Data: trigger.Encode(trigger.KindRejectEdit, o.Number())},
		)
	}
	if o.Status() == order.Pending {
		buttons = append(buttons, ports.Button{
			Label: "Cancel order",
			Data:  trigger.Encode(trigger.KindCancel, o.Number()),
		})
	}
	return buttons
}

// ChannelText renders the dispatch channel offer.
func ChannelText(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n\n%s\nTotal: %d\nPayment: %s\nWhere: %s",
		o.Number(), itemLines(o), o.Total(), o.Payment(), o.Location())
	if o.ReturnedCount() > 0 {
		fmt.Fprintf(&b, "\n\nReturned %d time(s)", o.ReturnedCount())
	}
	return b.String()
}

// ChannelButtons returns the accept action shown to couriers in the channel.
func ChannelButtons(o *order.Order) []ports.Button {
	return []ports.Button{{
		Label: "Take order",
		Data:  trigger.Encode(trigger.KindAccept, o.Number()),
	}}
}

// CourierText renders the assigned courier's task card, including contact
// details withheld from the channel.
func CourierText(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n\n%s\nTotal: %d\nPayment: %s\nWhere: %s\nPhone: %s",
		o.Number(), itemLines(o), o.Total(), o.Payment(), o.Location(), o.Phone())
	if o.Status() == order.Delivered {
		b.WriteString("\n\nDelivered. Thank you!")
	}
	return b.String()
}

// CourierButtons returns the return/delivered actions on the courier card.
func CourierButtons(o *order.Order) []ports.Button {
	if o.Status() != order.Accepted {
		return nil
	}
	return []ports.Button{
		{Label: "Delivered", Data: trigger.Encode(trigger.KindDeliver, o.Number())},
		{Label: "Return to channel", Data: trigger.Encode(trigger.KindReturn, o.Number())},
	}
}

// CodePromptText asks the courier for the customer's confirmation code.
func CodePromptText(o *order.Order) string {
	return fmt.Sprintf("Order #%d: ask the customer for their confirmation code and send it here.", o.Number())
}

// ReceiptPromptText asks the courier for a card payment receipt photo.
func ReceiptPromptText(o *order.Order) string {
	return fmt.Sprintf("Order #%d: code accepted. Now send a photo of the payment receipt.", o.Number())
}

// CodeMismatchText tells the courier the submitted code did not match.
func CodeMismatchText(o *order.Order) string {
	return fmt.Sprintf("Order #%d: that code does not match. Please try again.", o.Number())
}

// AdminCanceledText informs the customer that an operator canceled the order.
func AdminCanceledText(o *order.Order) string {
	return fmt.Sprintf("Order #%d was canceled by an operator. Sorry for the inconvenience.", o.Number())
}

// EditResolvedText informs the proposing operator of the customer's decision.
func EditResolvedText(o *order.Order, approved bool) string {
	if approved {
		return fmt.Sprintf("Order #%d: the customer approved your change.", o.Number())
	}
	return fmt.Sprintf("Order #%d: the customer kept the original order.", o.Number())
}
