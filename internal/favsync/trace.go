package favsync

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var favsyncTracer = otel.Tracer("matchday-favorites/internal/favsync")
var favsyncNoopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, favsyncNoopSpan
	}
	return favsyncTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
