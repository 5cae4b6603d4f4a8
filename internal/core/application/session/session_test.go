package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/application/session"
)

func TestRegistry_OpenAndGet(t *testing.T) {
	reg := session.NewRegistry()

	require.NoError(t, reg.Open(7, 12, session.ModeAwaitingCode))

	s, ok := reg.Get(7)
	require.True(t, ok)
	assert.Equal(t, 12, s.OrderNumber)
	assert.Equal(t, session.ModeAwaitingCode, s.Mode)
}

func TestRegistry_Open_SingleFlight(t *testing.T) {
	reg := session.NewRegistry()

	require.NoError(t, reg.Open(7, 12, session.ModeAwaitingCode))
	assert.ErrorIs(t, reg.Open(7, 13, session.ModeAwaitingCode), session.ErrSessionExists)

	// A different courier is unaffected.
	assert.NoError(t, reg.Open(8, 13, session.ModeAwaitingCode))
}

func TestRegistry_Advance(t *testing.T) {
	reg := session.NewRegistry()

	assert.ErrorIs(t, reg.Advance(7, session.ModeAwaitingReceipt), session.ErrNoSession)

	require.NoError(t, reg.Open(7, 12, session.ModeAwaitingCode))
	require.NoError(t, reg.Advance(7, session.ModeAwaitingReceipt))

	s, _ := reg.Get(7)
	assert.Equal(t, session.ModeAwaitingReceipt, s.Mode)
}

func TestRegistry_Close(t *testing.T) {
	reg := session.NewRegistry()

	require.NoError(t, reg.Open(7, 12, session.ModeAwaitingCode))
	reg.Close(7)

	_, ok := reg.Get(7)
	assert.False(t, ok)

	// Closing again is a no-op.
	reg.Close(7)

	// The courier can open a fresh session afterwards.
	assert.NoError(t, reg.Open(7, 13, session.ModeAwaitingReceipt))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := session.NewRegistry()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = reg.Open(id, int(id), session.ModeAwaitingCode)
			reg.Close(id)
		}(i)
	}
	wg.Wait()

	_, ok := reg.Get(25)
	assert.False(t, ok)
}
