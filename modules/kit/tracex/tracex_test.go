package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	tid := NewTraceID()
	if len(tid) != 32 {
		t.Fatalf("期望 32 位 hex trace_id，got=%q", tid)
	}
	ctx := WithTraceID(context.Background(), tid)
	if got, ok := TraceIDFrom(ctx); !ok || got != tid {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := TraceIDFrom(context.Background()); ok {
		t.Fatalf("空 ctx 不应有 trace_id")
	}
}
