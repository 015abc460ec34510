package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAddsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{zap.New(core)}

	ctx := WithTraceID(context.Background(), "t-1")
	ctx = WithUserID(ctx, 7)
	l.WithContext(ctx).Info("evt")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	m := entries[0].ContextMap()
	if m["trace_id"] != "t-1" {
		t.Errorf("trace_id = %v", m["trace_id"])
	}
	if m["user_id"] != int64(7) {
		t.Errorf("user_id = %v", m["user_id"])
	}
}

func TestWithContextBareContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{zap.New(core)}

	l.WithContext(context.Background()).Info("evt")
	l.WithContext(nil).Info("evt2")

	for _, e := range logs.All() {
		if len(e.Context) != 0 {
			t.Errorf("%s carries unexpected fields: %v", e.Message, e.Context)
		}
	}
}
