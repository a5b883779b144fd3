package engine

import (
	"context"
	"sync"
)

// Serialized funnels Generate calls through a single slot. Use it when the
// underlying inference runtime does not support concurrent calls; whether
// that is needed is the runtime's thread-safety contract, not an
// assumption made here.
type Serialized struct {
	mu    sync.Mutex
	inner Engine
}

// NewSerialized wraps an engine behind a single-slot queue.
func NewSerialized(inner Engine) *Serialized {
	return &Serialized{inner: inner}
}

// Generate acquires the slot, then delegates.
func (s *Serialized) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Generate(ctx, prompt, cfg)
}

// Name returns the underlying engine identifier.
func (s *Serialized) Name() string {
	return s.inner.Name()
}

// Models returns the underlying engine's models.
func (s *Serialized) Models() []string {
	return s.inner.Models()
}
