// Package orchestrate runs a query through both response strategies and
// packages their traces for side-by-side comparison.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/zen-systems/duet/pkg/calc"
	"github.com/zen-systems/duet/pkg/engine"
	"github.com/zen-systems/duet/pkg/intent"
	"github.com/zen-systems/duet/pkg/trace"
)

// Orchestrator runs the direct and routed strategies against a shared
// generation engine. The engine is passed in by reference; the
// orchestrator owns no ambient state and is safe for concurrent use.
type Orchestrator struct {
	engine engine.Engine
	direct engine.SamplingConfig
	routed engine.SamplingConfig
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDirectSampling overrides the direct path's decoding profile.
func WithDirectSampling(cfg engine.SamplingConfig) Option {
	return func(o *Orchestrator) {
		o.direct = cfg
	}
}

// WithRoutedSampling overrides the routed path's generation fallback profile.
func WithRoutedSampling(cfg engine.SamplingConfig) Option {
	return func(o *Orchestrator) {
		o.routed = cfg
	}
}

// New creates an orchestrator around a generation engine.
func New(eng engine.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: eng,
		direct: engine.DirectProfile(),
		routed: engine.RoutedProfile(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunDirect always generates via the model, no tools, using the longer
// token budget. Generation failures propagate to the caller.
func (o *Orchestrator) RunDirect(ctx context.Context, query string) (*trace.Result, error) {
	started := time.Now()
	tr := trace.New()
	tr.Append("generating via model, no tools")

	response, err := o.generate(ctx, query, o.direct)
	if err != nil {
		return nil, fmt.Errorf("direct path: %w", err)
	}
	return tr.Finish(trace.PathDirect, response, started), nil
}

// RunRouted classifies the query and either invokes the calculator or
// generates with the shorter token budget. Calculator failures are
// rendered into the response, never returned as errors; generation
// failures propagate.
func (o *Orchestrator) RunRouted(ctx context.Context, query string) (*trace.Result, error) {
	started := time.Now()
	tr := trace.New()

	decided := intent.Classify(query)
	if decided.Kind == intent.ToolInvocation {
		tr.Append("detected calculation request")
		return tr.Finish(trace.PathRouted, calculatorResponse(decided.Expression), started), nil
	}

	tr.Append("generating via model")
	response, err := o.generate(ctx, decided.Prompt, o.routed)
	if err != nil {
		return nil, fmt.Errorf("routed path: %w", err)
	}
	return tr.Finish(trace.PathRouted, response, started), nil
}

// Compare runs both paths for one query and assembles the comparison once
// both complete. The paths have no data dependency on each other and run
// concurrently; a failure on one path leaves the other path's result
// intact, and neither path is retried.
func (o *Orchestrator) Compare(ctx context.Context, query string) (*trace.Comparison, error) {
	cmp := &trace.Comparison{Query: query}

	var wg sync.WaitGroup
	var directErr, routedErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		cmp.Direct, directErr = o.RunDirect(ctx, query)
	}()
	go func() {
		defer wg.Done()
		cmp.Routed, routedErr = o.RunRouted(ctx, query)
	}()
	wg.Wait()

	if directErr != nil || routedErr != nil {
		return cmp, errors.Join(directErr, routedErr)
	}
	return cmp, nil
}

// generate calls the engine and returns the first sequence.
func (o *Orchestrator) generate(ctx context.Context, prompt string, cfg engine.SamplingConfig) (string, error) {
	sequences, err := o.engine.Generate(ctx, prompt, cfg)
	if err != nil {
		return "", err
	}
	if len(sequences) == 0 {
		return "", &engine.EngineError{Engine: o.engine.Name(), Err: fmt.Errorf("engine returned no sequences")}
	}
	return sequences[0], nil
}

// calculatorResponse evaluates the expression and renders the outcome as
// response text. Evaluation errors are part of the payload by design.
func calculatorResponse(expression string) string {
	value, err := calc.Evaluate(expression)
	if err != nil {
		return fmt.Sprintf("Error evaluating expression '%s': %v", expression, err)
	}
	return fmt.Sprintf("The result of '%s' is: %s", expression, formatNumber(value))
}

// formatNumber prints a result with minimal digits in plain decimal
// notation (45, not 45.000000; 100000000, not 1e+08).
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
