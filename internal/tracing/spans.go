package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanRegistrySearch  = "registry.search"
	SpanFavoritesCommit = "favorites.commit"
)

// Span attribute keys.
const (
	AttrQuery        = "search.query"
	AttrResultCount  = "search.result_count"
	AttrCacheHit     = "search.cache_hit"
	AttrPackageName  = "favorite.name"
	AttrOutcome      = "favorite.outcome"
	AttrRequestID    = "http.request_id"
	AttrHTTPStatus   = "http.status_code"
	AttrHTTPURL      = "http.url"
	AttrErrorMessage = "error.message"
)

// StartClientSpan starts a client-kind span for an outbound call.
func StartClientSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = Tracer()
	}
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err (if any) as the span status and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
