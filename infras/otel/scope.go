package otel

import (
	"fmt"
	"listo/shared/constant"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Scope is one span. Every layer opens its own and ends it on return.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)

	// SetItem tags the span with the item it works on.
	SetItem(id int64)
	// SetList tags the span with the list it works on.
	SetList(slug string)
}

type scope struct {
	span oteltrace.Span
}

func NewScope(span oteltrace.Span) Scope {
	return &scope{span: span}
}

func (s *scope) End() {
	s.span.End()
}

func (s *scope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scope) SetItem(id int64) {
	s.span.SetAttributes(attribute.Int64(constant.OtelItemIDAttributeKey, id))
}

func (s *scope) SetList(slug string) {
	s.span.SetAttributes(attribute.String(constant.OtelListSlugAttributeKey, slug))
}

func (s *scope) SetAttribute(key string, value any) {
	s.span.SetAttributes(Attribute(key, value))
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

// Attribute converts value to the closest typed span attribute. Unknown types are formatted as text.
func Attribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case []int64:
		return attribute.Int64Slice(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
