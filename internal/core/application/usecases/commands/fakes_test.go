package commands_test

import (
	"context"
	"sync"

	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"
)

// fakeStore is a shared in-memory backing for the fake unit of work
// factories, standing in for the database across a whole scenario.
type fakeStore struct {
	mu         sync.Mutex
	nextNumber int
	orders     map[int]*order.Order
	couriers   map[int64]*courier.Courier
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[int]*order.Order),
		couriers: make(map[int64]*courier.Courier),
	}
}

type fakeOrderRepo struct{ store *fakeStore }

func (r fakeOrderRepo) NextNumber(context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextNumber++
	return r.store.nextNumber, nil
}

func (r fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.Number()] = o
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.Number()] = o
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, number int) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[number]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", number)
	}
	return o, nil
}

func (r fakeOrderRepo) GetAllInPendingStatus(context.Context) ([]*order.Order, error) {
	return r.allInStatus(order.Pending), nil
}

func (r fakeOrderRepo) GetAllInPublishedStatus(context.Context) ([]*order.Order, error) {
	return r.allInStatus(order.Published), nil
}

func (r fakeOrderRepo) allInStatus(status order.Status) []*order.Order {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*order.Order
	for _, o := range r.store.orders {
		if o.Status() == status {
			out = append(out, o)
		}
	}
	return out
}

func (r fakeOrderRepo) GetAllAcceptedBy(_ context.Context, courierID int64) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*order.Order
	for _, o := range r.store.orders {
		if o.Status() == order.Accepted && o.AssignedTo(courierID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeCourierRepo struct{ store *fakeStore }

func (r fakeCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.couriers[c.ChatID()] = c
	return nil
}

func (r fakeCourierRepo) Update(_ context.Context, c *courier.Courier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.couriers[c.ChatID()] = c
	return nil
}

func (r fakeCourierRepo) Get(_ context.Context, chatID int64) (*courier.Courier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.couriers[chatID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", chatID)
	}
	return c, nil
}

func (r fakeCourierRepo) Exists(_ context.Context, chatID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.couriers[chatID]
	return ok, nil
}

type fakeUoW struct{ store *fakeStore }

func (u fakeUoW) Begin(context.Context) error            { return nil }
func (u fakeUoW) Commit(context.Context) error           { return nil }
func (u fakeUoW) Rollback(context.Context) error         { return nil }
func (u fakeUoW) OrderRepository() ports.OrderRepository { return fakeOrderRepo{store: u.store} }
func (u fakeUoW) CourierRepository() ports.CourierRepository {
	return fakeCourierRepo{store: u.store}
}

type fakeUoWFactory struct{ store *fakeStore }

func (f fakeUoWFactory) Create() commands.UoW { return fakeUoW{store: f.store} }

type fakeOrderUoWFactory struct{ store *fakeStore }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return fakeUoW{store: f.store} }

type fakeCourierUoWFactory struct{ store *fakeStore }

func (f fakeCourierUoWFactory) Create() commands.CourierUoW { return fakeUoW{store: f.store} }

// fakeScheduler records timer operations.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []int
	canceled  []int
}

func (s *fakeScheduler) Schedule(orderNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, orderNumber)
}

func (s *fakeScheduler) Cancel(orderNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled = append(s.canceled, orderNumber)
}

// fakeNotifier records synchronizations and direct notifications.
type fakeNotifier struct {
	mu     sync.Mutex
	synced []int
	notes  map[int64][]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{notes: make(map[int64][]string)}
}

func (n *fakeNotifier) Sync(_ context.Context, o *order.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.synced = append(n.synced, o.Number())
}

func (n *fakeNotifier) Notify(_ context.Context, chatID int64, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes[chatID] = append(n.notes[chatID], text)
}

func (n *fakeNotifier) notesFor(chatID int64) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notes[chatID]...)
}

// fakeReporter collects audit events.
type fakeReporter struct {
	mu     sync.Mutex
	events []ports.AuditEvent
}

func (r *fakeReporter) Report(_ context.Context, event ports.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *fakeReporter) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

type fakeAdmins struct{ ids map[int64]bool }

func (a fakeAdmins) IsAdmin(chatID int64) bool { return a.ids[chatID] }

// fakeOTP always issues the same code.
type fakeOTP struct{ code string }

func (g fakeOTP) Generate() (string, error) { return g.code, nil }
