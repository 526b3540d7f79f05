package otel_test

import (
	"context"
	"errors"
	"listo/infras/otel"
	"listo/shared/constant"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer(constant.OtelServiceScopeName).Start(context.Background(), "service.item.Update")

	scope := otel.NewScope(span)
	scope.SetItem(42)
	scope.SetList("groceries")
	scope.AddEvent(constant.OtelEventCacheHit)
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("database is locked"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.Int64(constant.OtelItemIDAttributeKey, 42))
	assert.Contains(t, attrs, attribute.String(constant.OtelListSlugAttributeKey, "groceries"))

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "database is locked", spans[0].Status().Description)

	events := spans[0].Events()
	require.Len(t, events, 2)
	assert.Equal(t, constant.OtelEventCacheHit, events[0].Name)
}

func TestAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{name: "bool", value: true, want: attribute.Bool("k", true)},
		{name: "string", value: "groceries", want: attribute.String("k", "groceries")},
		{name: "int", value: 2, want: attribute.Int("k", 2)},
		{name: "item id", value: int64(1_700_000_000_000), want: attribute.Int64("k", 1_700_000_000_000)},
		{name: "float", value: 0.5, want: attribute.Float64("k", 0.5)},
		{name: "slugs", value: []string{"a", "b"}, want: attribute.StringSlice("k", []string{"a", "b"})},
		{name: "ids", value: []int64{1, 2}, want: attribute.Int64Slice("k", []int64{1, 2})},
		{name: "stringer", value: 90 * time.Second, want: attribute.String("k", "1m30s")},
		{name: "fallback", value: struct{ N int }{N: 3}, want: attribute.String("k", "{3}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, otel.Attribute("k", tt.value))
		})
	}
}
