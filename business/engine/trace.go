package engine

import "context"

type ctxKey string

const TraceIDKey ctxKey = "trace_id"

// ContextWithTraceID tags a request context with the trace id the transport
// layer assigned, so engine logs can be correlated per request.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(TraceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
