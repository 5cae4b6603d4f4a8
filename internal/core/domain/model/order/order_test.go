package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
)

func mustItems(t *testing.T, lines ...string) []order.Item {
	t.Helper()
	items := make([]order.Item, 0, len(lines))
	for _, name := range lines {
		item, err := order.NewItem(name, 1)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	location, err := kernel.NewLocation(41.2995, 69.2401)
	require.NoError(t, err)

	o, err := order.NewOrder(
		1, 100,
		mustItems(t, "Palov", "Non"),
		85000,
		phone, location,
		order.PaymentCash,
		"41523",
		time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, 1, o.Number())
	assert.Equal(t, int64(100), o.UserID())
	assert.Equal(t, order.Pending, o.Status())
	assert.Len(t, o.Items(), 2)
	assert.Equal(t, 85000, o.Total())
	assert.Equal(t, order.PaymentCash, o.Payment())
	assert.False(t, o.Paid())
	assert.True(t, o.RequiresVerification())
	assert.Nil(t, o.Courier())
	assert.Zero(t, o.ReturnedCount())
	assert.NoError(t, o.Validate())
}

func TestNewOrder_InvalidParams(t *testing.T) {
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	location, err := kernel.NewLocation(41.2995, 69.2401)
	require.NoError(t, err)
	items := mustItems(t, "Palov")
	createdAt := time.Now()

	tests := []struct {
		name string
		fn   func() (*order.Order, error)
	}{
		{"zero number", func() (*order.Order, error) {
			return order.NewOrder(0, 100, items, 1000, phone, location, order.PaymentCash, "", createdAt)
		}},
		{"zero user", func() (*order.Order, error) {
			return order.NewOrder(1, 0, items, 1000, phone, location, order.PaymentCash, "", createdAt)
		}},
		{"no items", func() (*order.Order, error) {
			return order.NewOrder(1, 100, nil, 1000, phone, location, order.PaymentCash, "", createdAt)
		}},
		{"zero total", func() (*order.Order, error) {
			return order.NewOrder(1, 100, items, 0, phone, location, order.PaymentCash, "", createdAt)
		}},
		{"unknown payment", func() (*order.Order, error) {
			return order.NewOrder(1, 100, items, 1000, phone, location, order.PaymentUnknown, "", createdAt)
		}},
		{"short otp", func() (*order.Order, error) {
			return order.NewOrder(1, 100, items, 1000, phone, location, order.PaymentCash, "123", createdAt)
		}},
		{"non-numeric otp", func() (*order.Order, error) {
			return order.NewOrder(1, 100, items, 1000, phone, location, order.PaymentCash, "12a45", createdAt)
		}},
		{"zero created at", func() (*order.Order, error) {
			return order.NewOrder(1, 100, items, 1000, phone, location, order.PaymentCash, "", time.Time{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			require.Error(t, err)
		})
	}
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var o order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Lifecycle_HappyPath(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Publish())
	assert.Equal(t, order.Published, o.Status())

	require.NoError(t, o.Accept(7))
	assert.Equal(t, order.Accepted, o.Status())
	require.NotNil(t, o.Courier())
	assert.True(t, o.AssignedTo(7))

	require.NoError(t, o.Deliver(7))
	assert.Equal(t, order.Delivered, o.Status())
	assert.True(t, o.Paid())
}

func TestOrder_Accept_RequiresPublished(t *testing.T) {
	o := newTestOrder(t)
	assert.ErrorIs(t, o.Accept(7), order.ErrStatusConflict)
}

func TestOrder_Return(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Publish())
	require.NoError(t, o.Accept(7))

	require.NoError(t, o.Return(7))
	assert.Equal(t, order.Published, o.Status())
	assert.Nil(t, o.Courier())
	assert.Equal(t, 1, o.ReturnedCount())

	// The order can be picked up again, by anybody.
	require.NoError(t, o.Accept(9))
	assert.True(t, o.AssignedTo(9))
}

func TestOrder_Return_WrongCourier(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Publish())
	require.NoError(t, o.Accept(7))

	assert.ErrorIs(t, o.Return(8), order.ErrNotAssignedCourier)
	assert.Equal(t, order.Accepted, o.Status())
}

func TestOrder_Deliver_WrongCourier(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Publish())
	require.NoError(t, o.Accept(7))

	assert.ErrorIs(t, o.Deliver(8), order.ErrNotAssignedCourier)
	assert.False(t, o.Paid())
}

func TestOrder_Cancel(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Cancel())
	assert.Equal(t, order.Canceled, o.Status())

	assert.ErrorIs(t, o.Cancel(), order.ErrStatusConflict)
}

func TestOrder_VerifyOTP(t *testing.T) {
	o := newTestOrder(t)
	assert.True(t, o.VerifyOTP("41523"))
	assert.False(t, o.VerifyOTP("00000"))
	assert.False(t, o.VerifyOTP(""))
}

func TestOrder_VerifyOTP_NoCode(t *testing.T) {
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	location, err := kernel.NewRawLocation("Chilonzor, 5")
	require.NoError(t, err)

	o, err := order.NewOrder(2, 100, mustItems(t, "Lagmon"), 30000,
		phone, location, order.PaymentCard, "", time.Now())
	require.NoError(t, err)

	assert.False(t, o.RequiresVerification())
	assert.False(t, o.VerifyOTP(""))
}

func TestOrder_StageAndApproveEdit(t *testing.T) {
	o := newTestOrder(t)

	edit, err := order.NewProposedEdit(mustItems(t, "Palov"), 45000, 555)
	require.NoError(t, err)
	require.NoError(t, o.StageEdit(edit))
	require.NotNil(t, o.ProposedEdit())

	// Status is untouched while the edit awaits the customer.
	assert.Equal(t, order.Pending, o.Status())

	applied, err := o.ApproveEdit()
	require.NoError(t, err)
	assert.Equal(t, int64(555), applied.ProposedBy())
	assert.Equal(t, 45000, o.Total())
	assert.Len(t, o.Items(), 1)
	assert.Nil(t, o.ProposedEdit())
}

func TestOrder_StageAndRejectEdit(t *testing.T) {
	o := newTestOrder(t)

	edit, err := order.NewProposedEdit(mustItems(t, "Palov"), 45000, 555)
	require.NoError(t, err)
	require.NoError(t, o.StageEdit(edit))

	discarded, err := o.RejectEdit()
	require.NoError(t, err)
	assert.Equal(t, int64(555), discarded.ProposedBy())
	assert.Equal(t, 85000, o.Total())
	assert.Len(t, o.Items(), 2)
	assert.Nil(t, o.ProposedEdit())
}

func TestOrder_ResolveEdit_NoneStaged(t *testing.T) {
	o := newTestOrder(t)

	_, err := o.ApproveEdit()
	assert.ErrorIs(t, err, order.ErrNoProposedEdit)
	_, err = o.RejectEdit()
	assert.ErrorIs(t, err, order.ErrNoProposedEdit)
}

func TestOrder_StageEdit_TerminalStatus(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Cancel())

	edit, err := order.NewProposedEdit(mustItems(t, "Palov"), 45000, 555)
	require.NoError(t, err)
	assert.ErrorIs(t, o.StageEdit(edit), order.ErrStatusConflict)
}

func TestOrder_Bindings(t *testing.T) {
	o := newTestOrder(t)

	binding, err := order.NewMessageBinding(-100123, 42)
	require.NoError(t, err)
	require.NoError(t, o.Bind(order.RoleChannel, binding))

	got, ok := o.Binding(order.RoleChannel)
	require.True(t, ok)
	assert.Equal(t, int64(-100123), got.ChatID())
	assert.Equal(t, 42, got.MessageID())

	replacement, err := order.NewMessageBinding(-100123, 43)
	require.NoError(t, err)
	require.NoError(t, o.Bind(order.RoleChannel, replacement))
	got, _ = o.Binding(order.RoleChannel)
	assert.Equal(t, 43, got.MessageID())

	o.Unbind(order.RoleChannel)
	_, ok = o.Binding(order.RoleChannel)
	assert.False(t, ok)

	assert.Error(t, o.Bind(order.Role("unknown"), binding))
	assert.Error(t, o.Bind(order.RoleCustomer, order.MessageBinding{}))
}

func TestRestoreOrder(t *testing.T) {
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	location, err := kernel.NewLocation(41.2995, 69.2401)
	require.NoError(t, err)
	courierID := int64(7)
	binding, err := order.NewMessageBinding(100, 5)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		3, 100,
		mustItems(t, "Palov"),
		45000,
		phone, location,
		order.PaymentCash,
		"41523",
		time.Now(),
		order.Accepted,
		false,
		&courierID,
		2,
		map[order.Role]order.MessageBinding{order.RoleCustomer: binding},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, order.Accepted, o.Status())
	assert.True(t, o.AssignedTo(7))
	assert.Equal(t, 2, o.ReturnedCount())
	_, ok := o.Binding(order.RoleCustomer)
	assert.True(t, ok)
}

func TestRestoreOrder_CourierWithoutAcceptedStatus(t *testing.T) {
	phone, err := kernel.NewPhone("+998901234567")
	require.NoError(t, err)
	location, err := kernel.NewLocation(41.2995, 69.2401)
	require.NoError(t, err)
	courierID := int64(7)

	_, err = order.RestoreOrder(
		3, 100, mustItems(t, "Palov"), 45000, phone, location,
		order.PaymentCash, "", time.Now(),
		order.Published, false, &courierID, 0, nil, nil,
	)
	require.Error(t, err)
}

func TestOrder_IsEqual(t *testing.T) {
	a := newTestOrder(t)
	b := newTestOrder(t)
	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
