package engine

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicEngine implements the Engine interface for Claude models.
type AnthropicEngine struct {
	client anthropic.Client
	model  string
}

// NewAnthropicEngine creates a new Anthropic engine bound to one model.
func NewAnthropicEngine(apiKey, model string) (*AnthropicEngine, error) {
	if apiKey == "" {
		return nil, &UnavailableError{Engine: "anthropic", Err: fmt.Errorf("API key is required")}
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicEngine{client: client, model: model}, nil
}

// Name returns the engine identifier.
func (e *AnthropicEngine) Name() string {
	return "anthropic"
}

// Models returns the list of supported Claude models.
func (e *AnthropicEngine) Models() []string {
	return []string{
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
	}
}

// Generate sends a prompt to Claude and returns the message text.
// The messages API yields one message per call, so requests for more than
// one sequence loop.
func (e *AnthropicEngine) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: err}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: int64(cfg.MaxNewTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if cfg.DoSample {
		params.TopK = anthropic.Int(int64(cfg.TopK))
		params.TopP = anthropic.Float(cfg.TopP)
	} else {
		params.Temperature = anthropic.Float(0)
	}

	sequences := make([]string, 0, cfg.NumReturnSequences)
	for i := 0; i < cfg.NumReturnSequences; i++ {
		resp, err := e.client.Messages.New(ctx, params)
		if err != nil {
			return nil, &EngineError{Engine: e.Name(), Err: fmt.Errorf("anthropic API error: %w", err)}
		}

		var content string
		for _, block := range resp.Content {
			if block.Type == "text" {
				content += block.Text
			}
		}
		sequences = append(sequences, content)
	}

	return sequences, nil
}
