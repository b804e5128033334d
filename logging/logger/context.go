package logger

import (
	"context"

	"github.com/ncobase/listing/ctxutil"
)

var traceKey = ctxutil.TraceIDKey

const requestKey = "request_id"

// getTraceID gets a trace ID from the context.
func getTraceID(ctx context.Context) string {
	return ctxutil.GetTraceID(ctx)
}

func getRequestID(ctx context.Context) string {
	return ctxutil.GetRequestID(ctx)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	return ctxutil.EnsureTraceID(ctx)
}
