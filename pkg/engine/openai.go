package engine

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEngine implements the Engine interface for OpenAI models.
type OpenAIEngine struct {
	client openai.Client
	model  string
}

// NewOpenAIEngine creates a new OpenAI engine bound to one model.
func NewOpenAIEngine(apiKey, model string) (*OpenAIEngine, error) {
	if apiKey == "" {
		return nil, &UnavailableError{Engine: "openai", Err: fmt.Errorf("API key is required")}
	}
	if model == "" {
		model = "gpt-5.2-instant"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEngine{client: client, model: model}, nil
}

// Name returns the engine identifier.
func (e *OpenAIEngine) Name() string {
	return "openai"
}

// Models returns the list of supported OpenAI models.
func (e *OpenAIEngine) Models() []string {
	return []string{
		"gpt-5.2-instant",
		"gpt-5.2-thinking",
		"gpt-5.2-pro",
	}
}

// Generate sends a prompt to OpenAI and returns the choice contents.
func (e *OpenAIEngine) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: err}
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(cfg.MaxNewTokens)),
		N:                   openai.Int(int64(cfg.NumReturnSequences)),
	}
	if cfg.DoSample {
		// The chat API has no top_k knob; top_p carries the sampling config.
		params.TopP = openai.Float(cfg.TopP)
	} else {
		params.Temperature = openai.Float(0)
	}

	resp, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: fmt.Errorf("openai API error: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return nil, &EngineError{Engine: e.Name(), Err: fmt.Errorf("openai returned no choices")}
	}

	sequences := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		sequences = append(sequences, choice.Message.Content)
	}
	return sequences, nil
}
