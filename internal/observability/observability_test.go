package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rishabhsai/RishBOT/internal/observability"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	return logs
}

func TestFromContext_AddsCorrelationFields(t *testing.T) {
	logs := observe(t)

	ctx := context.Background()
	ctx = observability.WithTraceID(ctx, "trace-1")
	ctx = observability.WithRequestID(ctx, "req-1")
	ctx = observability.WithEndpoint(ctx, "solve")
	ctx = observability.WithProvider(ctx, "ollama")
	ctx = observability.WithModel(ctx, "gemma:2b")

	observability.FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "trace-1", fields["trace_id"])
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "solve", fields["endpoint"])
	require.Equal(t, "ollama", fields["provider"])
	require.Equal(t, "gemma:2b", fields["model"])
	require.NotContains(t, fields, "span_id")
}

func TestContextGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	require.Empty(t, observability.GetTraceID(ctx))
	require.Empty(t, observability.GetSpanID(ctx))
	require.Empty(t, observability.GetRequestID(ctx))
	require.Empty(t, observability.GetEndpoint(ctx))
	require.Empty(t, observability.GetProvider(ctx))
	require.Empty(t, observability.GetModel(ctx))
}

func TestGenerateIDs_AreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		for _, id := range []string{
			observability.GenerateTraceID(),
			observability.GenerateSpanID(),
			observability.GenerateRequestID(),
		} {
			require.NotEmpty(t, id)
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %s", id)
			seen[id] = struct{}{}
		}
	}
}

func TestEventBus_Publish(t *testing.T) {
	logs := observe(t)

	ctx := observability.WithRequestID(context.Background(), "req-9")
	observability.NewEventBus().Publish(ctx, "relay.completed", map[string]interface{}{
		"provider": "openai",
		"tokens":   42,
	})

	entries := logs.FilterMessage("event published").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "relay.completed", fields["event"])
	require.Equal(t, "openai", fields["provider"])
	require.EqualValues(t, 42, fields["tokens"])
	require.Equal(t, "req-9", fields["request_id"])
}
