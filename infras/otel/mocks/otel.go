package mocks

import (
	"context"
	"listo/infras/otel"
	"listo/shared/constant"
	"sync"
)

// Recorder is an otel.Otel for tests. It exports nothing and keeps the
// attributes, events and errors of every scope opened through it.
type Recorder struct {
	mu         sync.Mutex
	scopes     []string
	attributes map[string][]any
	events     []string
	errors     []error
}

func NewOtel() *Recorder {
	return &Recorder{attributes: map[string][]any{}}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.scopes = append(r.scopes, name)
	r.mu.Unlock()

	return ctx, &scope{recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Values returns every value recorded under key, in order.
func (r *Recorder) Values(key string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]any(nil), r.attributes[key]...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) Scopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.scopes...)
}

func (r *Recorder) set(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attributes[key] = append(r.attributes[key], value)
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.events = append(s.recorder.events, name)
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.set(key, value)
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.recorder.set(key, value)
	}
}

func (s *scope) SetItem(id int64) {
	s.recorder.set(constant.OtelItemIDAttributeKey, id)
}

func (s *scope) SetList(slug string) {
	s.recorder.set(constant.OtelListSlugAttributeKey, slug)
}
