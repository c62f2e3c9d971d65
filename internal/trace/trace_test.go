package trace

import (
	"context"
	"io"
	"testing"
)

func TestTraceIDDisabled(t *testing.T) {
	if err := Init(false, "test", io.Discard); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	if id, ok := TraceID(ctx); ok || id != "" {
		t.Fatalf("expected no trace id while disabled, got %q", id)
	}
}

func TestTraceIDFromSpan(t *testing.T) {
	if err := Init(true, "test", io.Discard); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = Shutdown(context.Background())
		_ = Init(false, "test", io.Discard)
	})

	if _, ok := TraceID(context.Background()); ok {
		t.Fatalf("context without a span should have no trace id")
	}
	ctx, span := StartSpan(context.Background(), "turn")
	id, ok := TraceID(ctx)
	End(span, nil)
	if !ok || len(id) != 32 {
		t.Fatalf("trace id got %q ok=%v", id, ok)
	}
}
