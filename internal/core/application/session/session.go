// Package session tracks in-progress delivery confirmations. A courier who
// taps "delivered" enters a short-lived session that tells the inbound
// adapter how to interpret their next free-form message (a confirmation code
// or a receipt photo). Sessions are in-memory: a restart simply asks the
// courier to tap "delivered" again.
package session

import (
	"errors"
	"sync"
)

// Mode says what the courier's next message is expected to carry.
type Mode int

const (
	// ModeAwaitingCode expects the customer's confirmation code.
	ModeAwaitingCode Mode = iota + 1
	// ModeAwaitingReceipt expects a payment receipt photo.
	ModeAwaitingReceipt
)

var (
	// ErrSessionExists is returned when a courier already has an open
	// confirmation session. One delivery is confirmed at a time.
	ErrSessionExists = errors.New("courier already has an open confirmation session")

	// ErrNoSession is returned when advancing or reading a session that
	// does not exist.
	ErrNoSession = errors.New("courier has no open confirmation session")
)

// Session is one in-progress delivery confirmation.
type Session struct {
	CourierID   int64
	OrderNumber int
	Mode        Mode
}

// Registry holds the open sessions, keyed by courier. Safe for concurrent
// use.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]Session),
	}
}

// Open starts a confirmation session for the courier. Returns
// ErrSessionExists if one is already open, regardless of the order.
func (r *Registry) Open(courierID int64, orderNumber int, mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[courierID]; ok {
		return ErrSessionExists
	}

	r.sessions[courierID] = Session{
		CourierID:   courierID,
		OrderNumber: orderNumber,
		Mode:        mode,
	}
	return nil
}

// Advance moves the courier's open session to a new mode. Used when a card
// payment still needs a receipt after the code matched.
func (r *Registry) Advance(courierID int64, mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[courierID]
	if !ok {
		return ErrNoSession
	}

	s.Mode = mode
	r.sessions[courierID] = s
	return nil
}

// Get returns the courier's open session, if any.
func (r *Registry) Get(courierID int64) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[courierID]
	return s, ok
}

// Close ends the courier's session. Safe to call when none is open.
func (r *Registry) Close(courierID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, courierID)
}

// CloseFor ends the courier's session only when it targets the given order.
// Called when an order leaves the Accepted state underneath an open
// handshake, so the courier is free to confirm other deliveries.
func (r *Registry) CloseFor(courierID int64, orderNumber int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[courierID]; ok && s.OrderNumber == orderNumber {
		delete(r.sessions, courierID)
	}
}
