// Package trace holds the execution records produced by the two paths.
package trace

import "time"

// Path names used in results.
const (
	PathDirect = "direct"
	PathRouted = "routed"
)

// Trace is an append-only log of the steps one path took while processing
// a query. It is owned by a single path and finalized into a Result when
// the path completes.
type Trace struct {
	steps []string
}

// New creates an empty trace.
func New() *Trace {
	return &Trace{}
}

// Append records one human-readable step description.
func (t *Trace) Append(step string) {
	t.steps = append(t.steps, step)
}

// Steps returns a copy of the recorded steps in order.
func (t *Trace) Steps() []string {
	out := make([]string, len(t.steps))
	copy(out, t.steps)
	return out
}

// Finish seals the trace into a Result for the named path.
func (t *Trace) Finish(path, response string, started time.Time) *Result {
	return &Result{
		Path:           path,
		Steps:          t.Steps(),
		Response:       response,
		DurationMillis: time.Since(started).Milliseconds(),
	}
}

// Result captures one path's finished trace and final response.
type Result struct {
	Path           string   `json:"path"`
	Steps          []string `json:"steps"`
	Response       string   `json:"response"`
	DurationMillis int64    `json:"duration_ms"`
}

// Comparison pairs the two path results produced for a single query.
// It is assembled once, after both paths complete, and read-only after.
type Comparison struct {
	Query  string  `json:"query"`
	Direct *Result `json:"direct"`
	Routed *Result `json:"routed"`
}
