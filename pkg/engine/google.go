package engine

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GoogleEngine implements the Engine interface for Gemini models.
type GoogleEngine struct {
	client *genai.Client
	model  string
}

// NewGoogleEngine creates a new Google Gemini engine bound to one model.
func NewGoogleEngine(apiKey, model string) (*GoogleEngine, error) {
	if apiKey == "" {
		return nil, &UnavailableError{Engine: "google", Err: fmt.Errorf("API key is required")}
	}
	if model == "" {
		model = "gemini-2.0-pro"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &UnavailableError{Engine: "google", Err: fmt.Errorf("failed to create client: %w", err)}
	}

	return &GoogleEngine{client: client, model: model}, nil
}

// Name returns the engine identifier.
func (e *GoogleEngine) Name() string {
	return "google"
}

// Models returns the list of supported Gemini models.
func (e *GoogleEngine) Models() []string {
	return []string{
		"gemini-2.0-pro",
	}
}

// Generate sends a prompt to Gemini and returns the candidate texts.
func (e *GoogleEngine) Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: err}
	}

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(cfg.MaxNewTokens),
		CandidateCount:  int32(cfg.NumReturnSequences),
	}
	if cfg.DoSample {
		genCfg.TopK = genai.Ptr(float32(cfg.TopK))
		genCfg.TopP = genai.Ptr(float32(cfg.TopP))
	} else {
		genCfg.Temperature = genai.Ptr(float32(0))
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, &EngineError{Engine: e.Name(), Err: fmt.Errorf("google API error: %w", err)}
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &EngineError{Engine: e.Name(), Err: fmt.Errorf("google returned no candidates")}
	}

	sequences := make([]string, 0, len(resp.Candidates))
	for _, candidate := range resp.Candidates {
		var content string
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					content += part.Text
				}
			}
		}
		sequences = append(sequences, content)
	}

	return sequences, nil
}
