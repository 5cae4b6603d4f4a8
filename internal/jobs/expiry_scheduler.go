package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"foodbot/internal/core/application/trigger"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/order"
)

// ExpiryScheduler arms one timer per pending order and fires a publish
// trigger when the order's cancellation window closes. Canceling disarms
// the order's timer; a fired or disarmed timer deregisters itself, so the
// timer map only ever holds live windows.
type ExpiryScheduler struct {
	delay      time.Duration
	dispatcher *trigger.Dispatcher
	uowFactory commands.OrderUoWFactory
	logger     *slog.Logger

	mu     sync.Mutex
	timers map[int]*time.Timer
	closed bool
}

// NewExpiryScheduler creates a scheduler publishing orders delay after
// checkout.
func NewExpiryScheduler(
	delay time.Duration,
	dispatcher *trigger.Dispatcher,
	uowFactory commands.OrderUoWFactory,
	logger *slog.Logger,
) *ExpiryScheduler {
	return &ExpiryScheduler{
		delay:      delay,
		dispatcher: dispatcher,
		uowFactory: uowFactory,
		logger:     logger.With("component", "expiry_scheduler"),
		timers:     make(map[int]*time.Timer),
	}
}

// Schedule arms the order's window timer for the full delay. Scheduling an
// already armed order is a no-op.
func (s *ExpiryScheduler) Schedule(orderNumber int) {
	s.ScheduleAfter(orderNumber, s.delay)
}

// ScheduleAfter arms the order's window timer with a custom remainder.
// Used by startup reconciliation for windows that were already counting
// down when the process stopped.
func (s *ExpiryScheduler) ScheduleAfter(orderNumber int, remaining time.Duration) {
	if remaining < 0 {
		remaining = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if _, armed := s.timers[orderNumber]; armed {
		return
	}

	s.timers[orderNumber] = time.AfterFunc(remaining, func() {
		s.fire(orderNumber)
	})
}

// Cancel disarms the order's window timer. Unknown orders are a no-op.
func (s *ExpiryScheduler) Cancel(orderNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[orderNumber]; ok {
		timer.Stop()
		delete(s.timers, orderNumber)
	}
}

// Reconcile re-arms timers for orders that were still pending when the
// process last stopped. Only windows that are still open get a timer;
// orders whose window expired while down stay Pending until an operator
// publishes them.
func (s *ExpiryScheduler) Reconcile(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllInPendingStatus(ctx)
	if err != nil {
		return err
	}

	armed := 0
	for _, o := range pending {
		remaining := s.delay - time.Since(o.CreatedAt())
		if remaining <= 0 {
			continue
		}
		s.ScheduleAfter(o.Number(), remaining)
		armed++
	}

	if armed > 0 || len(pending) > armed {
		s.logger.Info("reconciled cancellation windows",
			"armed", armed, "expired", len(pending)-armed)
	}
	return nil
}

// Stop disarms every timer. Pending windows are picked up again by
// Reconcile on the next start.
func (s *ExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for number, timer := range s.timers {
		timer.Stop()
		delete(s.timers, number)
	}
}

func (s *ExpiryScheduler) fire(orderNumber int) {
	s.mu.Lock()
	delete(s.timers, orderNumber)
	s.mu.Unlock()

	ctx := context.Background()
	err := s.dispatcher.Dispatch(ctx, trigger.Trigger{
		Kind:        trigger.KindPublish,
		OrderNumber: orderNumber,
	})
	if err != nil {
		// Losing the race to a cancellation is the expected outcome, not a fault.
		if errors.Is(err, order.ErrStatusConflict) {
			s.logger.InfoContext(ctx, "window timer fired on settled order", "order", orderNumber)
			return
		}
		s.logger.ErrorContext(ctx, "window timer publish failed", "order", orderNumber, "error", err)
	}
}
