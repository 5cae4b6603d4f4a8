package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/application/session"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/courier"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
)

const (
	testCode      = "41523"
	customerID    = int64(100)
	courierOneID  = int64(7)
	courierTwoID  = int64(9)
	operatorID    = int64(500)
)

// env wires every handler against shared in-memory fakes, standing in for
// the composition root in tests.
type env struct {
	store     *fakeStore
	sessions  *session.Registry
	scheduler *fakeScheduler
	notifier  *fakeNotifier
	reporter  *fakeReporter

	checkout        commands.CheckoutCommandHandler
	publish         commands.PublishOrderCommandHandler
	accept          commands.AcceptOrderCommandHandler
	returnOrder     commands.ReturnOrderCommandHandler
	confirm         commands.ConfirmDeliveryCommandHandler
	submitOTP       commands.SubmitOTPCommandHandler
	submitReceipt   commands.SubmitReceiptCommandHandler
	cancel          commands.CancelOrderCommandHandler
	proposeEdit     commands.ProposeEditCommandHandler
	resolveEdit     commands.ResolveEditCommandHandler
	registerCourier commands.RegisterCourierCommandHandler
}

func newEnv() *env {
	store := newFakeStore()
	sessions := session.NewRegistry()
	scheduler := &fakeScheduler{}
	notifier := newFakeNotifier()
	reporter := &fakeReporter{}
	admins := fakeAdmins{ids: map[int64]bool{operatorID: true}}

	orderUoW := fakeOrderUoWFactory{store: store}
	courierUoW := fakeCourierUoWFactory{store: store}
	uow := fakeUoWFactory{store: store}

	return &env{
		store:     store,
		sessions:  sessions,
		scheduler: scheduler,
		notifier:  notifier,
		reporter:  reporter,

		checkout:        commands.NewCheckoutCommandHandler(orderUoW, fakeOTP{code: testCode}, scheduler, notifier, reporter),
		publish:         commands.NewPublishOrderCommandHandler(orderUoW, scheduler, notifier, reporter),
		accept:          commands.NewAcceptOrderCommandHandler(uow, notifier, reporter),
		returnOrder:     commands.NewReturnOrderCommandHandler(orderUoW, sessions, notifier, reporter),
		confirm:         commands.NewConfirmDeliveryCommandHandler(uow, sessions, notifier, reporter),
		submitOTP:       commands.NewSubmitOTPCommandHandler(uow, sessions, notifier, reporter),
		submitReceipt:   commands.NewSubmitReceiptCommandHandler(uow, sessions, notifier, reporter),
		cancel:          commands.NewCancelOrderCommandHandler(orderUoW, admins, scheduler, sessions, notifier, reporter),
		proposeEdit:     commands.NewProposeEditCommandHandler(orderUoW, admins, notifier, reporter),
		resolveEdit:     commands.NewResolveEditCommandHandler(orderUoW, notifier, reporter),
		registerCourier: commands.NewRegisterCourierCommandHandler(courierUoW, admins, reporter),
	}
}

func (e *env) enrollCourier(t *testing.T, chatID int64) {
	t.Helper()
	phone, err := kernel.NewPhone("+998903334455")
	require.NoError(t, err)
	c, err := courier.NewCourier(chatID, "Courier", phone, time.Now())
	require.NoError(t, err)
	e.store.couriers[chatID] = c
}

func (e *env) placeOrder(t *testing.T, payment order.Payment) int {
	t.Helper()
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	item, err := order.NewItem("Palov", 2)
	require.NoError(t, err)
	location, err := kernel.NewRawLocation("Chilonzor, 5")
	require.NoError(t, err)

	cmd, err := commands.NewCheckoutCommand(customerID, []order.Item{item}, 85000,
		phone, location, payment)
	require.NoError(t, err)

	number, err := e.checkout.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return number
}

func (e *env) orderStatus(t *testing.T, number int) order.Status {
	t.Helper()
	o, ok := e.store.orders[number]
	require.True(t, ok, "order %d not stored", number)
	return o.Status()
}

func (e *env) publishOrder(t *testing.T, number int) {
	t.Helper()
	cmd, err := commands.NewPublishOrderCommand(number)
	require.NoError(t, err)
	require.NoError(t, e.publish.Handle(context.Background(), cmd))
}

func (e *env) acceptOrder(t *testing.T, number int, courierID int64) {
	t.Helper()
	cmd, err := commands.NewAcceptOrderCommand(number, courierID)
	require.NoError(t, err)
	require.NoError(t, e.accept.Handle(context.Background(), cmd))
}

func (e *env) confirmDelivery(t *testing.T, number int, courierID int64) {
	t.Helper()
	cmd, err := commands.NewConfirmDeliveryCommand(number, courierID)
	require.NoError(t, err)
	require.NoError(t, e.confirm.Handle(context.Background(), cmd))
}

func TestLifecycle_CashOrderDeliveredWithCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	number := e.placeOrder(t, order.PaymentCash)
	assert.Equal(t, order.Pending, e.orderStatus(t, number))
	assert.Equal(t, []int{number}, e.scheduler.scheduled)

	e.publishOrder(t, number)
	assert.Equal(t, order.Published, e.orderStatus(t, number))

	e.acceptOrder(t, number, courierOneID)
	assert.Equal(t, order.Accepted, e.orderStatus(t, number))

	e.confirmDelivery(t, number, courierOneID)
	_, open := e.sessions.Get(courierOneID)
	assert.True(t, open)

	otpCmd, err := commands.NewSubmitOTPCommand(courierOneID, testCode)
	require.NoError(t, err)
	require.NoError(t, e.submitOTP.Handle(ctx, otpCmd))

	assert.Equal(t, order.Delivered, e.orderStatus(t, number))
	assert.True(t, e.store.orders[number].Paid())
	_, open = e.sessions.Get(courierOneID)
	assert.False(t, open)

	// The delivery was credited to the courier's ledger.
	assert.Equal(t, 85000, e.store.couriers[courierOneID].Ledger().Total())

	assert.Equal(t,
		[]string{"NEW ORDER", "PUBLISHED", "ACCEPTED", "DELIVERED"},
		e.reporter.kinds())
}

func TestLifecycle_CustomerCancelsInsideWindow(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	number := e.placeOrder(t, order.PaymentCash)

	cmd, err := commands.NewCancelOrderCommand(number, customerID)
	require.NoError(t, err)
	require.NoError(t, e.cancel.Handle(ctx, cmd))

	assert.Equal(t, order.Canceled, e.orderStatus(t, number))
	assert.Equal(t, []int{number}, e.scheduler.canceled)
	// The record is retained, not removed.
	assert.Contains(t, e.store.orders, number)
}

func TestLifecycle_CustomerCancelAfterWindowIsRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	number := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, number)

	cmd, err := commands.NewCancelOrderCommand(number, customerID)
	require.NoError(t, err)
	err = e.cancel.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrStatusConflict)
	assert.Equal(t, order.Published, e.orderStatus(t, number))
}

func TestLifecycle_ReturnAndReacceptByAnotherCourier(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)
	e.enrollCourier(t, courierTwoID)

	number := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, number)
	e.acceptOrder(t, number, courierOneID)

	retCmd, err := commands.NewReturnOrderCommand(number, courierOneID)
	require.NoError(t, err)
	require.NoError(t, e.returnOrder.Handle(ctx, retCmd))

	assert.Equal(t, order.Published, e.orderStatus(t, number))
	assert.Equal(t, 1, e.store.orders[number].ReturnedCount())

	e.acceptOrder(t, number, courierTwoID)
	e.confirmDelivery(t, number, courierTwoID)

	otpCmd, err := commands.NewSubmitOTPCommand(courierTwoID, testCode)
	require.NoError(t, err)
	require.NoError(t, e.submitOTP.Handle(ctx, otpCmd))

	assert.Equal(t, order.Delivered, e.orderStatus(t, number))
	assert.Equal(t, 85000, e.store.couriers[courierTwoID].Ledger().Total())
	assert.Zero(t, e.store.couriers[courierOneID].Ledger().Total())
}

func TestLifecycle_WrongCodeThenRight(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	number := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, number)
	e.acceptOrder(t, number, courierOneID)
	e.confirmDelivery(t, number, courierOneID)

	wrong, err := commands.NewSubmitOTPCommand(courierOneID, "00000")
	require.NoError(t, err)
	err = e.submitOTP.Handle(ctx, wrong)
	assert.ErrorIs(t, err, commands.ErrCodeMismatch)

	// The session survives the mismatch, so a retry works.
	right, err := commands.NewSubmitOTPCommand(courierOneID, testCode)
	require.NoError(t, err)
	require.NoError(t, e.submitOTP.Handle(ctx, right))
	assert.Equal(t, order.Delivered, e.orderStatus(t, number))
}

func TestLifecycle_CardPaymentNeedsReceiptAfterCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	number := e.placeOrder(t, order.PaymentCard)
	e.publishOrder(t, number)
	e.acceptOrder(t, number, courierOneID)
	e.confirmDelivery(t, number, courierOneID)

	otpCmd, err := commands.NewSubmitOTPCommand(courierOneID, testCode)
	require.NoError(t, err)
	require.NoError(t, e.submitOTP.Handle(ctx, otpCmd))

	// The code alone does not finish a card order.
	assert.Equal(t, order.Accepted, e.orderStatus(t, number))
	s, open := e.sessions.Get(courierOneID)
	require.True(t, open)
	assert.Equal(t, session.ModeAwaitingReceipt, s.Mode)

	rcptCmd, err := commands.NewSubmitReceiptCommand(courierOneID, "photo-file-id-1")
	require.NoError(t, err)
	require.NoError(t, e.submitReceipt.Handle(ctx, rcptCmd))

	assert.Equal(t, order.Delivered, e.orderStatus(t, number))
	assert.Contains(t, e.reporter.kinds(), "RECEIPT")
}

func TestLifecycle_AdminCancelNotifiesCustomer(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	number := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, number)
	e.acceptOrder(t, number, courierOneID)

	cmd, err := commands.NewCancelOrderCommand(number, operatorID)
	require.NoError(t, err)
	require.NoError(t, e.cancel.Handle(ctx, cmd))

	assert.Equal(t, order.Canceled, e.orderStatus(t, number))
	require.NotEmpty(t, e.notifier.notesFor(customerID))
	assert.Contains(t, e.notifier.notesFor(customerID)[0], "canceled by an operator")
}

func TestLifecycle_CancelClosesCourierHandshake(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	first := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, first)
	e.acceptOrder(t, first, courierOneID)
	e.confirmDelivery(t, first, courierOneID)
	_, open := e.sessions.Get(courierOneID)
	require.True(t, open)

	cancelCmd, err := commands.NewCancelOrderCommand(first, operatorID)
	require.NoError(t, err)
	require.NoError(t, e.cancel.Handle(ctx, cancelCmd))

	// The dead handshake went with the order.
	_, open = e.sessions.Get(courierOneID)
	assert.False(t, open)

	// The courier is free to confirm the next delivery.
	second := e.placeOrder(t, order.PaymentCash)
	e.publishOrder(t, second)
	e.acceptOrder(t, second, courierOneID)
	e.confirmDelivery(t, second, courierOneID)

	otpCmd, err := commands.NewSubmitOTPCommand(courierOneID, testCode)
	require.NoError(t, err)
	require.NoError(t, e.submitOTP.Handle(ctx, otpCmd))
	assert.Equal(t, order.Delivered, e.orderStatus(t, second))
}

func TestLifecycle_ReturnClosesCourierHandshake(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.enrollCourier(t, courierOneID)

	number := e.placeOrder(t, order.PaymentCard)
	e.publishOrder(t, number)
	e.acceptOrder(t, number, courierOneID)
	e.confirmDelivery(t, number, courierOneID)

	retCmd, err := commands.NewReturnOrderCommand(number, courierOneID)
	require.NoError(t, err)
	require.NoError(t, e.returnOrder.Handle(ctx, retCmd))

	_, open := e.sessions.Get(courierOneID)
	assert.False(t, open)
	assert.Equal(t, order.Published, e.orderStatus(t, number))
}

func TestLifecycle_AdminEditApprovedByCustomer(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	number := e.placeOrder(t, order.PaymentCash)

	item, err := order.NewItem("Lagmon", 1)
	require.NoError(t, err)
	propose, err := commands.NewProposeEditCommand(number, operatorID, []order.Item{item}, 30000)
	require.NoError(t, err)
	require.NoError(t, e.proposeEdit.Handle(ctx, propose))
	require.NotNil(t, e.store.orders[number].ProposedEdit())

	resolve, err := commands.NewResolveEditCommand(number, customerID, true)
	require.NoError(t, err)
	require.NoError(t, e.resolveEdit.Handle(ctx, resolve))

	o := e.store.orders[number]
	assert.Nil(t, o.ProposedEdit())
	assert.Equal(t, 30000, o.Total())
	require.Len(t, o.Items(), 1)
	assert.Equal(t, "Lagmon", o.Items()[0].Name())
	// The proposing operator learns the outcome.
	require.NotEmpty(t, e.notifier.notesFor(operatorID))
}
