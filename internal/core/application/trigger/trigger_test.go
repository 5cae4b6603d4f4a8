package trigger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/application/trigger"
)

func TestEncodeParse(t *testing.T) {
	for _, kind := range []trigger.Kind{
		trigger.KindPublish, trigger.KindAccept, trigger.KindReturn,
		trigger.KindDeliver, trigger.KindCancel,
		trigger.KindApproveEdit, trigger.KindRejectEdit,
		trigger.KindOtpSubmit, trigger.KindReceiptSubmit, trigger.KindEditPropose,
	} {
		data := trigger.Encode(kind, 42)
		gotKind, gotNumber, err := trigger.Parse(data)
		require.NoError(t, err, data)
		assert.Equal(t, kind, gotKind)
		assert.Equal(t, 42, gotNumber)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, data := range []string{"", "accept", "accept:", "accept:x", "accept:-1", "nosuch:5"} {
		_, _, err := trigger.Parse(data)
		assert.Error(t, err, data)
	}
}

func TestDispatcher_Routes(t *testing.T) {
	d := trigger.NewDispatcher(slog.Default())

	var got trigger.Trigger
	d.Register(trigger.KindAccept, func(_ context.Context, tr trigger.Trigger) error {
		got = tr
		return nil
	})

	err := d.Dispatch(context.Background(), trigger.Trigger{
		Kind: trigger.KindAccept, OrderNumber: 12, Actor: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, got.OrderNumber)
	assert.Equal(t, int64(7), got.Actor)
}

func TestDispatcher_UnregisteredKind(t *testing.T) {
	d := trigger.NewDispatcher(slog.Default())
	err := d.Dispatch(context.Background(), trigger.Trigger{Kind: trigger.KindCancel})
	require.Error(t, err)
}

func TestDispatcher_HandlerErrorPassesThrough(t *testing.T) {
	d := trigger.NewDispatcher(slog.Default())
	boom := errors.New("boom")
	d.Register(trigger.KindPublish, func(context.Context, trigger.Trigger) error { return boom })

	err := d.Dispatch(context.Background(), trigger.Trigger{Kind: trigger.KindPublish})
	assert.ErrorIs(t, err, boom)
}
