package engine

import (
	"context"
	"sync"
)

// Lazy defers engine construction until first use. The underlying model is
// built exactly once per process lifetime; concurrent first callers are
// guarded so only one initializer runs. Construction failures are reported
// as *UnavailableError on every subsequent call.
type Lazy struct {
	name  string
	build func() (Engine, error)

	once  sync.Once
	inner Engine
	err   error
}

// NewLazy wraps a constructor. name identifies the engine before the
// constructor has run.
func NewLazy(name string, build func() (Engine, error)) *Lazy {
	return &Lazy{name: name, build: build}
}

func (l *Lazy) init() {
	l.once.Do(func() {
		l.inner, l.err = l.build()
		if l.err != nil && !IsUnavailable(l.err) {
			l.err = &UnavailableError{Engine: l.name, Err: l.err}
		}
	})
}

// Warmup forces initialization so that an unavailable model surfaces at
// process startup rather than on the first query.
func (l *Lazy) Warmup() error {
	l.init()
	return l.err
}

// Generate initializes the engine on first use and delegates.
func (l *Lazy) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	l.init()
	if l.err != nil {
		return nil, l.err
	}
	return l.inner.Generate(ctx, prompt, cfg)
}

// Name returns the engine identifier without forcing initialization.
func (l *Lazy) Name() string {
	return l.name
}

// Models returns the underlying engine's models, or nil when the engine
// is unavailable.
func (l *Lazy) Models() []string {
	l.init()
	if l.err != nil {
		return nil
	}
	return l.inner.Models()
}
