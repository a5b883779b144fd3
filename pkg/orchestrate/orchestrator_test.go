package orchestrate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/zen-systems/duet/pkg/engine"
	"github.com/zen-systems/duet/pkg/trace"
)

// recordingEngine captures the sampling config of every call.
type recordingEngine struct {
	mu       sync.Mutex
	calls    []engine.SamplingConfig
	response string
	err      error
}

func (e *recordingEngine) Generate(_ context.Context, prompt string, cfg engine.SamplingConfig) ([]string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, cfg)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return []string{e.response + prompt}, nil
}

func (e *recordingEngine) Name() string { return "recording" }

func (e *recordingEngine) Models() []string { return []string{"mock-1"} }

func (e *recordingEngine) configs() []engine.SamplingConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]engine.SamplingConfig, len(e.calls))
	copy(out, e.calls)
	return out
}

func TestRunDirectAlwaysGenerates(t *testing.T) {
	eng := &recordingEngine{response: "gen: "}
	orch := New(eng)

	res, err := orch.RunDirect(context.Background(), "Calculate 2 + 2")
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	if res.Path != trace.PathDirect {
		t.Fatalf("path = %q", res.Path)
	}
	if len(res.Steps) != 1 || res.Steps[0] != "generating via model, no tools" {
		t.Fatalf("unexpected trace: %v", res.Steps)
	}
	// The direct path never touches the calculator, even for math queries.
	if res.Response != "gen: Calculate 2 + 2" {
		t.Fatalf("response = %q", res.Response)
	}
}

func TestRunRoutedToolBranch(t *testing.T) {
	eng := &recordingEngine{response: "gen: "}
	orch := New(eng)

	res, err := orch.RunRouted(context.Background(), "What is 15 * 3?")
	if err != nil {
		t.Fatalf("routed: %v", err)
	}
	if len(res.Steps) != 1 || res.Steps[0] != "detected calculation request" {
		t.Fatalf("unexpected trace: %v", res.Steps)
	}
	if res.Response != "The result of '15 * 3' is: 45" {
		t.Fatalf("response = %q", res.Response)
	}
	if calls := eng.configs(); len(calls) != 0 {
		t.Fatalf("tool branch must not call the engine, saw %d calls", len(calls))
	}
}

func TestRunRoutedGenerationBranch(t *testing.T) {
	eng := &recordingEngine{response: "gen: "}
	orch := New(eng)

	query := "Tell me a short story about a brave knight."
	res, err := orch.RunRouted(context.Background(), query)
	if err != nil {
		t.Fatalf("routed: %v", err)
	}
	if len(res.Steps) != 1 || res.Steps[0] != "generating via model" {
		t.Fatalf("unexpected trace: %v", res.Steps)
	}
	if res.Response != "gen: "+query {
		t.Fatalf("response = %q", res.Response)
	}
}

func TestRoutedEvaluationErrorsAreContent(t *testing.T) {
	orch := New(&recordingEngine{})

	cases := []struct {
		query  string
		expect string
	}{
		{"Calculate 5 / 0", "division by zero"},
		{"Calculate 2 + ", "syntax error"},
	}
	for _, tc := range cases {
		res, err := orch.RunRouted(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("RunRouted(%q): evaluation failures must not be errors, got %v", tc.query, err)
		}
		if !strings.HasPrefix(res.Response, "Error evaluating expression") {
			t.Fatalf("RunRouted(%q): response = %q", tc.query, res.Response)
		}
		if !strings.Contains(res.Response, tc.expect) {
			t.Fatalf("RunRouted(%q): response %q missing %q", tc.query, res.Response, tc.expect)
		}
	}
}

func TestSamplingProfilesPerPath(t *testing.T) {
	eng := &recordingEngine{response: "gen: "}
	long := engine.SamplingConfig{MaxNewTokens: 100, NumReturnSequences: 1, DoSample: true, TopK: 50, TopP: 0.95}
	short := engine.SamplingConfig{MaxNewTokens: 50, NumReturnSequences: 1, DoSample: true, TopK: 50, TopP: 0.95}
	orch := New(eng, WithDirectSampling(long), WithRoutedSampling(short))

	if _, err := orch.RunDirect(context.Background(), "hello"); err != nil {
		t.Fatalf("direct: %v", err)
	}
	if _, err := orch.RunRouted(context.Background(), "hello"); err != nil {
		t.Fatalf("routed: %v", err)
	}

	calls := eng.configs()
	if len(calls) != 2 {
		t.Fatalf("expected 2 engine calls, got %d", len(calls))
	}
	if calls[0].MaxNewTokens != 100 {
		t.Fatalf("direct path used %d new tokens, want 100", calls[0].MaxNewTokens)
	}
	if calls[1].MaxNewTokens != 50 {
		t.Fatalf("routed fallback used %d new tokens, want 50", calls[1].MaxNewTokens)
	}
}

func TestCompareProducesBothResults(t *testing.T) {
	orch := New(&recordingEngine{response: "gen: "})

	for _, query := range []string{
		"What is 15 * 3?",
		"Explain the concept of artificial intelligence.",
		"x",
	} {
		cmp, err := orch.Compare(context.Background(), query)
		if err != nil {
			t.Fatalf("Compare(%q): %v", query, err)
		}
		if cmp.Direct == nil || cmp.Routed == nil {
			t.Fatalf("Compare(%q): missing a result", query)
		}
		if len(cmp.Direct.Steps) == 0 || len(cmp.Routed.Steps) == 0 {
			t.Fatalf("Compare(%q): empty trace", query)
		}
		if cmp.Query != query {
			t.Fatalf("Compare(%q): query = %q", query, cmp.Query)
		}
	}
}

func TestCompareFailedPathLeavesOtherIntact(t *testing.T) {
	eng := &recordingEngine{err: fmt.Errorf("inference backend gone")}
	orch := New(eng)

	// Tool branch on the routed path; only the direct path hits the engine.
	cmp, err := orch.Compare(context.Background(), "Calculate 2 + 2")
	if err == nil {
		t.Fatalf("expected direct path failure")
	}
	if !strings.Contains(err.Error(), "direct path") {
		t.Fatalf("error not attributed to its path: %v", err)
	}
	if cmp.Direct != nil {
		t.Fatalf("failed path should have no result")
	}
	if cmp.Routed == nil || cmp.Routed.Response != "The result of '2 + 2' is: 4" {
		t.Fatalf("routed result disturbed: %+v", cmp.Routed)
	}
}

func TestCompareBothPathsFail(t *testing.T) {
	eng := &recordingEngine{err: fmt.Errorf("inference backend gone")}
	orch := New(eng)

	_, err := orch.Compare(context.Background(), "Tell me a story")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(err.Error(), "direct path") || !strings.Contains(err.Error(), "routed path") {
		t.Fatalf("expected both path attributions, got %v", err)
	}
}

func TestNumberFormatting(t *testing.T) {
	orch := New(&recordingEngine{})

	res, err := orch.RunRouted(context.Background(), "Calculate (20 + 5) / 5.")
	if err != nil {
		t.Fatalf("routed: %v", err)
	}
	if res.Response != "The result of '(20 + 5) / 5' is: 5" {
		t.Fatalf("response = %q", res.Response)
	}

	res, err = orch.RunRouted(context.Background(), "Calculate 7 / 2")
	if err != nil {
		t.Fatalf("routed: %v", err)
	}
	if res.Response != "The result of '7 / 2' is: 3.5" {
		t.Fatalf("response = %q", res.Response)
	}

	// Large integral results stay in plain decimal notation.
	res, err = orch.RunRouted(context.Background(), "Calculate 10000 * 10000")
	if err != nil {
		t.Fatalf("routed: %v", err)
	}
	if res.Response != "The result of '10000 * 10000' is: 100000000" {
		t.Fatalf("response = %q", res.Response)
	}
}
