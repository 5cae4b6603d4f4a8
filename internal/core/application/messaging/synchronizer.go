// Package messaging keeps every live chat view of an order consistent with
// the aggregate's state. Each order has at most one message per chat role;
// the synchronizer sends, edits or deletes to close the gap between what a
// chat shows and what the order says, and falls back to delete-and-repost
// when an edit target is gone.
package messaging

import (
	"context"
	"errors"
	"log/slog"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
)

// BindingSaver persists an order's message bindings after the synchronizer
// changed them. Binding changes are presentation state, so they are saved
// outside the command's business transaction.
type BindingSaver interface {
	SaveBindings(ctx context.Context, o *order.Order) error
}

// Synchronizer reconciles the chat views of an order with its current
// state. Failures are logged and swallowed: messaging must never undo a
// committed transition.
type Synchronizer struct {
	gateway       ports.MessageGateway
	saver         BindingSaver
	channelChatID int64
	logger        *slog.Logger
}

// NewSynchronizer creates a synchronizer posting channel offers to
// channelChatID.
func NewSynchronizer(
	gateway ports.MessageGateway,
	saver BindingSaver,
	channelChatID int64,
	logger *slog.Logger,
) *Synchronizer {
	return &Synchronizer{
		gateway:       gateway,
		saver:         saver,
		channelChatID: channelChatID,
		logger:        logger.With("component", "message-synchronizer"),
	}
}

// view is the desired presentation of one chat role.
type view struct {
	role    order.Role
	chatID  int64
	text    string
	buttons []ports.Button
	// present says whether the role should have a live message at all.
	present bool
	// retain keeps the final message in place instead of deleting it when
	// the view stops being live (terminal customer and courier cards).
	retain bool
}

// Sync brings every chat view of the order in line with its state and
// persists the resulting bindings. Safe to call repeatedly; a no-op when
// views already match.
func (s *Synchronizer) Sync(ctx context.Context, o *order.Order) {
	for _, v := range s.desiredViews(o) {
		s.apply(ctx, o, v)
	}

	if err := s.saver.SaveBindings(ctx, o); err != nil {
		s.logger.Error("failed to persist message bindings",
			"order", o.Number(), "error", err)
	}
}

// Notify sends a one-off message outside any order view.
func (s *Synchronizer) Notify(ctx context.Context, chatID int64, text string) {
	if _, err := s.gateway.Send(ctx, chatID, text, nil); err != nil {
		s.logger.Error("failed to send notification", "chat", chatID, "error", err)
	}
}

func (s *Synchronizer) desiredViews(o *order.Order) []view {
	status := o.Status()

	views := []view{{
		role:    order.RoleCustomer,
		chatID:  o.UserID(),
		text:    CustomerText(o),
		buttons: CustomerButtons(o),
		present: true,
		retain:  true,
	}, {
		role:    order.RoleChannel,
		chatID:  s.channelChatID,
		text:    ChannelText(o),
		buttons: ChannelButtons(o),
		present: status == order.Published,
	}}

	if courierID := o.Courier(); courierID != nil {
		views = append(views, view{
			role:    order.RoleCourier,
			chatID:  *courierID,
			text:    CourierText(o),
			buttons: CourierButtons(o),
			present: status == order.Accepted || status == order.Delivered,
			retain:  status == order.Delivered,
		})
	} else {
		views = append(views, view{role: order.RoleCourier, present: false})
	}

	return views
}

func (s *Synchronizer) apply(ctx context.Context, o *order.Order, v view) {
	binding, bound := o.Binding(v.role)

	if !v.present {
		if !bound {
			return
		}
		if v.retain {
			// Leave the final message, just drop the live binding.
			o.Unbind(v.role)
			return
		}
		ref := ports.MessageRef{ChatID: binding.ChatID(), MessageID: binding.MessageID()}
		if err := s.gateway.Delete(ctx, ref); err != nil && !errors.Is(err, ports.ErrMessageGone) {
			s.logger.Error("failed to delete stale view",
				"order", o.Number(), "role", string(v.role), "error", err)
		}
		o.Unbind(v.role)
		return
	}

	if bound {
		ref := ports.MessageRef{ChatID: binding.ChatID(), MessageID: binding.MessageID()}
		err := s.gateway.Edit(ctx, ref, v.text, v.buttons)
		if err == nil {
			return
		}
		if !errors.Is(err, ports.ErrMessageGone) {
			s.logger.Error("failed to edit view, leaving as is",
				"order", o.Number(), "role", string(v.role), "error", err)
			return
		}
		// The message vanished underneath us: repost.
		o.Unbind(v.role)
	}

	ref, err := s.gateway.Send(ctx, v.chatID, v.text, v.buttons)
	if err != nil {
		s.logger.Error("failed to post view",
			"order", o.Number(), "role", string(v.role), "error", err)
		return
	}

	newBinding, err := order.NewMessageBinding(ref.ChatID, ref.MessageID)
	if err != nil {
		s.logger.Error("gateway returned unusable message reference",
			"order", o.Number(), "role", string(v.role), "error", err)
		return
	}
	if err = o.Bind(v.role, newBinding); err != nil {
		s.logger.Error("failed to record view binding",
			"order", o.Number(), "role", string(v.role), "error", err)
	}
}
