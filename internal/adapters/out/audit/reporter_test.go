package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbot/internal/core/ports"
)

type recordingGateway struct {
	sent    []string
	chatIDs []int64
	fail    bool
}

func (g *recordingGateway) Send(_ context.Context, chatID int64, text string, _ []ports.Button) (ports.MessageRef, error) {
	if g.fail {
		return ports.MessageRef{}, errors.New("telegram down")
	}
	g.sent = append(g.sent, text)
	g.chatIDs = append(g.chatIDs, chatID)
	return ports.MessageRef{ChatID: chatID, MessageID: len(g.sent)}, nil
}

func (g *recordingGateway) Edit(context.Context, ports.MessageRef, string, []ports.Button) error {
	return nil
}

func (g *recordingGateway) Delete(context.Context, ports.MessageRef) error {
	return nil
}

func TestNewReporter_RequiresDependencies(t *testing.T) {
	_, err := NewReporter(nil, 900, slog.Default())
	require.Error(t, err)

	_, err = NewReporter(&recordingGateway{}, 0, slog.Default())
	require.Error(t, err)

	_, err = NewReporter(&recordingGateway{}, 900, nil)
	require.Error(t, err)
}

func TestReporter_Report_PostsToAuditChat(t *testing.T) {
	gateway := &recordingGateway{}
	reporter, err := NewReporter(gateway, 900, slog.Default())
	require.NoError(t, err)

	occurredAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	reporter.Report(context.Background(), ports.AuditEvent{
		Kind:        "NEW ORDER",
		OrderNumber: 12,
		OccurredAt:  occurredAt,
		Details:     "order #12 placed by user 100, total 85000, payment cash",
	})

	require.Len(t, gateway.sent, 1)
	assert.Equal(t, int64(900), gateway.chatIDs[0])
	assert.Contains(t, gateway.sent[0], "[NEW ORDER]")
	assert.Contains(t, gateway.sent[0], "2025-06-01 12:30:00 UTC")
	assert.Contains(t, gateway.sent[0], "order #12 placed")
}

func TestReporter_Report_GatewayFailureDoesNotPanic(t *testing.T) {
	reporter, err := NewReporter(&recordingGateway{fail: true}, 900, slog.Default())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		reporter.Report(context.Background(), ports.AuditEvent{
			Kind:       "CANCELED",
			OccurredAt: time.Now().UTC(),
			Details:    "order #12 canceled by user 100",
		})
	})
}
