package engine

import (
	"context"
	"testing"
)

func TestSamplingConfigValidate(t *testing.T) {
	valid := SamplingConfig{MaxNewTokens: 50, NumReturnSequences: 1, DoSample: true, TopK: 50, TopP: 0.95}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []SamplingConfig{
		{MaxNewTokens: 0, NumReturnSequences: 1},
		{MaxNewTokens: -1, NumReturnSequences: 1},
		{MaxNewTokens: 10, NumReturnSequences: 0},
		{MaxNewTokens: 10, NumReturnSequences: 1, TopK: -1},
		{MaxNewTokens: 10, NumReturnSequences: 1, TopP: 1.5},
		{MaxNewTokens: 10, NumReturnSequences: 1, TopP: -0.1},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestProfiles(t *testing.T) {
	direct := DirectProfile()
	routed := RoutedProfile()

	if err := direct.Validate(); err != nil {
		t.Fatalf("direct profile invalid: %v", err)
	}
	if err := routed.Validate(); err != nil {
		t.Fatalf("routed profile invalid: %v", err)
	}
	if direct.MaxNewTokens <= routed.MaxNewTokens {
		t.Fatalf("direct path should get the longer token budget: %d vs %d",
			direct.MaxNewTokens, routed.MaxNewTokens)
	}
}

func TestProviderConstructorsRequireKey(t *testing.T) {
	if _, err := NewOpenAIEngine("", ""); !IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if _, err := NewAnthropicEngine("", ""); !IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if _, err := NewGoogleEngine("", ""); !IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}

	openai, err := NewOpenAIEngine("test-key", "")
	if err != nil {
		t.Fatalf("openai constructor: %v", err)
	}
	if openai.Name() != "openai" || len(openai.Models()) == 0 {
		t.Fatalf("openai engine incomplete")
	}

	claude, err := NewAnthropicEngine("test-key", "")
	if err != nil {
		t.Fatalf("anthropic constructor: %v", err)
	}
	if claude.Name() != "anthropic" || len(claude.Models()) == 0 {
		t.Fatalf("anthropic engine incomplete")
	}
}

func TestMockEngineDeterministic(t *testing.T) {
	eng := NewMockEngineWithResponses(map[string]string{"hello": "world"}, "fallback:")

	first, err := eng.Generate(context.Background(), "hello", RoutedProfile())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := eng.Generate(context.Background(), "hello", RoutedProfile())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first) != 1 || first[0] != "world" || first[0] != second[0] {
		t.Fatalf("expected deterministic canned response, got %v then %v", first, second)
	}
}

func TestMockEngineSequenceCount(t *testing.T) {
	eng := NewMockEngine()
	cfg := RoutedProfile()
	cfg.NumReturnSequences = 3

	sequences, err := eng.Generate(context.Background(), "prompt", cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(sequences) != 3 {
		t.Fatalf("expected 3 sequences, got %d", len(sequences))
	}
}

func TestMockEngineRejectsInvalidConfig(t *testing.T) {
	eng := NewMockEngine()
	_, err := eng.Generate(context.Background(), "prompt", SamplingConfig{})
	if err == nil {
		t.Fatalf("expected error for invalid sampling config")
	}
}
