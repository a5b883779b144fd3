package engine

import (
	"context"
	"fmt"
)

// MockEngine returns deterministic responses for local runs and tests.
type MockEngine struct {
	responses       map[string]string
	defaultResponse string
}

// NewMockEngine creates a mock engine with a default response.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		responses:       make(map[string]string),
		defaultResponse: "mock response:",
	}
}

// NewMockEngineWithResponses creates a mock engine with predefined
// per-prompt responses.
func NewMockEngineWithResponses(responses map[string]string, defaultResponse string) *MockEngine {
	if defaultResponse == "" {
		defaultResponse = "mock response:"
	}
	return &MockEngine{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the engine identifier.
func (e *MockEngine) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (e *MockEngine) Models() []string {
	return []string{"mock-1"}
}

// Generate returns deterministic continuations for the prompt.
func (e *MockEngine) Generate(_ context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: err}
	}

	content, ok := e.responses[prompt]
	if !ok {
		content = fmt.Sprintf("%s\n%s", e.defaultResponse, prompt)
	}

	sequences := make([]string, cfg.NumReturnSequences)
	for i := range sequences {
		sequences[i] = content
	}
	return sequences, nil
}
