package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := Tracer
	Tracer = tp.Tracer("test")
	t.Cleanup(func() {
		Tracer = prev
		_ = tp.Shutdown(context.Background())
	})

	parentCtx, parent := Tracer.Start(context.Background(), "request")
	ctx, span := StartSpan(parentCtx, "BlogService", "Get", attribute.Int64("post.id", 7))
	assert.Equal(t, span.SpanContext(), trace.SpanFromContext(ctx).SpanContext())
	span.End()
	parent.End()

	ended := rec.Ended()
	require.Len(t, ended, 2)
	got := ended[0]
	assert.Equal(t, "BlogService.Get", got.Name())
	assert.Equal(t, trace.SpanKindInternal, got.SpanKind())
	assert.Equal(t, parent.SpanContext().SpanID(), got.Parent().SpanID())
	assert.Contains(t, got.Attributes(), attribute.Int64("post.id", 7))
}

func TestInitTracing_Disabled(t *testing.T) {
	prev := Tracer
	t.Cleanup(func() { Tracer = prev })

	shutdown, err := InitTracing(TracingConfig{ServiceName: "devconnect-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, span := StartSpan(context.Background(), "HomeService", "Page")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}
