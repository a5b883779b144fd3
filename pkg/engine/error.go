package engine

import (
	"context"
	"errors"
	"fmt"
)

// UnavailableError reports that the model behind an engine could not be
// initialized. It surfaces at startup and is fatal: the process must not
// proceed without a working engine.
type UnavailableError struct {
	Engine string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return "engine unavailable"
	}
	if e.Err != nil {
		return fmt.Sprintf("engine %q unavailable: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("engine %q unavailable", e.Engine)
}

func (e *UnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EngineError wraps a per-call generation failure with engine metadata.
// Per-call failures are fatal to the path that issued the call; the
// orchestrator never retries them.
type EngineError struct {
	Engine  string
	Timeout bool
	Err     error
}

func (e *EngineError) Error() string {
	if e == nil {
		return "engine error"
	}
	if e.Timeout {
		return fmt.Sprintf("engine %q timed out: %v", e.Engine, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("engine %q error", e.Engine)
}

func (e *EngineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsUnavailable reports whether err is a startup initialization failure.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}

// IsTimeout reports whether err is a per-call generation timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var engineErr *EngineError
	return errors.As(err, &engineErr) && engineErr.Timeout
}
