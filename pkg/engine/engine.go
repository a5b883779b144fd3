// Package engine is the boundary to the generative text model shared by
// both paths. Provider engines wrap the vendor SDKs behind a single
// Generate surface; lifecycle wrappers (Lazy, Serialized, WithTimeout)
// realize the one-model-per-process contract.
package engine

import (
	"context"
	"fmt"
)

// Engine is the generation boundary consumed by the orchestrator. The
// model behind it may be slow; callers pass a context and receive
// cfg.NumReturnSequences continuations on success.
type Engine interface {
	// Generate sends a prompt to the model and returns its continuations.
	Generate(ctx context.Context, prompt string, cfg SamplingConfig) ([]string, error)

	// Name returns the engine's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

// SamplingConfig controls decoding for a single Generate call. Configs are
// fixed per path and never mutated after construction.
type SamplingConfig struct {
	MaxNewTokens       int     `yaml:"max_new_tokens" json:"max_new_tokens"`
	NumReturnSequences int     `yaml:"num_return_sequences" json:"num_return_sequences"`
	DoSample           bool    `yaml:"do_sample" json:"do_sample"`
	TopK               int     `yaml:"top_k" json:"top_k"`
	TopP               float64 `yaml:"top_p" json:"top_p"`
}

// Validate checks the config's field ranges.
func (c SamplingConfig) Validate() error {
	if c.MaxNewTokens <= 0 {
		return fmt.Errorf("max_new_tokens must be positive, got %d", c.MaxNewTokens)
	}
	if c.NumReturnSequences < 1 {
		return fmt.Errorf("num_return_sequences must be at least 1, got %d", c.NumReturnSequences)
	}
	if c.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", c.TopK)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("top_p must be in [0, 1], got %g", c.TopP)
	}
	return nil
}

// DirectProfile returns the default decoding profile for the direct path.
// The direct path gets the longer token budget.
func DirectProfile() SamplingConfig {
	return SamplingConfig{
		MaxNewTokens:       100,
		NumReturnSequences: 1,
		DoSample:           true,
		TopK:               50,
		TopP:               0.95,
	}
}

// RoutedProfile returns the default decoding profile for the routed path's
// generation fallback.
func RoutedProfile() SamplingConfig {
	return SamplingConfig{
		MaxNewTokens:       50,
		NumReturnSequences: 1,
		DoSample:           true,
		TopK:               50,
		TopP:               0.95,
	}
}
