package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handler executes one trigger kind.
type Handler func(ctx context.Context, t Trigger) error

// Dispatcher routes triggers to their registered handlers. Registration
// happens once at composition time; dispatching is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind]Handler),
		logger:   logger.With("component", "trigger-dispatcher"),
	}
}

// Register binds a handler to a trigger kind, replacing any previous one.
func (d *Dispatcher) Register(kind Kind, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = handler
}

// Dispatch routes the trigger to its handler. An unregistered kind is an
// error; handler errors pass through unwrapped so callers can classify them.
func (d *Dispatcher) Dispatch(ctx context.Context, t Trigger) error {
	d.mu.RLock()
	handler, ok := d.handlers[t.Kind]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler registered for trigger %s", t.Kind)
	}

	d.logger.Info("dispatching trigger",
		"kind", t.Kind.String(), "order", t.OrderNumber, "actor", t.Actor)

	return handler(ctx, t)
}
