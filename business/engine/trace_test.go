package engine

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "req-1234")

	if got := TraceIDFromContext(ctx); got != "req-1234" {
		t.Fatalf("expected trace id to round-trip, got %q", got)
	}
}

func TestTraceIDMissing(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty trace id on untagged context, got %q", got)
	}
}

func TestTraceIDEmptyNotStored(t *testing.T) {
	ctx := context.Background()
	if tagged := ContextWithTraceID(ctx, ""); tagged != ctx {
		t.Fatal("expected empty trace id to leave the context untouched")
	}
}
