package engine

import (
	"context"
	"errors"
	"time"
)

// WithTimeout bounds each Generate call to limit. A deadline hit is
// reported as a timeout-flagged *EngineError, surfaced like any other
// per-call failure. A non-positive limit returns inner unchanged.
func WithTimeout(inner Engine, limit time.Duration) Engine {
	if limit <= 0 {
		return inner
	}
	return &timeoutEngine{inner: inner, limit: limit}
}

type timeoutEngine struct {
	inner Engine
	limit time.Duration
}

func (e *timeoutEngine) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.limit)
	defer cancel()

	sequences, err := e.inner.Generate(ctx, prompt, cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &EngineError{Engine: e.inner.Name(), Timeout: true, Err: err}
		}
		return nil, err
	}
	return sequences, nil
}

func (e *timeoutEngine) Name() string {
	return e.inner.Name()
}

func (e *timeoutEngine) Models() []string {
	return e.inner.Models()
}
