package ports

import (
	"context"
	"errors"
)

// ErrMessageGone is returned by gateway edits and deletes when the target
// message no longer exists on the chat platform (deleted by a user, or the
// chat itself is gone). Callers treat it as a signal to repost.
var ErrMessageGone = errors.New("message no longer exists")

// Button is a single inline action attached to a chat message. Data is the
// opaque callback payload routed back through the trigger dispatcher.
type Button struct {
	Label string
	Data  string
}

// MessageRef addresses a concrete message in a concrete chat.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// MessageGateway abstracts the chat platform used to reach customers,
// couriers and the dispatch channel. Implementations retry transient
// failures; permanent failures surface as errors (ErrMessageGone for
// missing messages).
type MessageGateway interface {
	// Send posts a new message and returns its reference.
	Send(ctx context.Context, chatID int64, text string, buttons []Button) (MessageRef, error)

	// Edit replaces the text and buttons of an existing message in place.
	Edit(ctx context.Context, ref MessageRef, text string, buttons []Button) error

	// Delete removes a message.
	Delete(ctx context.Context, ref MessageRef) error
}
