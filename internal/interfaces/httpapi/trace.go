package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("matchday-favorites/internal/interfaces/httpapi")

// startSpan opens a handler span under the otelhttp request span. Untraced
// routes such as /healthz carry no parent and get the no-op span back.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return apiTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

// untracedPaths are probed by orchestrators often enough to drown real traffic.
var untracedPaths = map[string]struct{}{
	"/healthz": {},
	"/health":  {},
	"/livez":   {},
	"/readyz":  {},
}
