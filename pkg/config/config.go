// Package config loads duet configuration from ~/.duet/config.yaml and
// the environment. Environment variables take precedence over file
// values for API keys.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zen-systems/duet/pkg/engine"
)

// Config holds the application configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	Engine          EngineConfig
	Sampling        SamplingProfiles
	Examples        []string
	ConfigDir       string
}

// FileConfig represents the structure of ~/.duet/config.yaml.
type FileConfig struct {
	APIKeys  APIKeysConfig    `yaml:"api_keys"`
	Engine   EngineConfig     `yaml:"engine"`
	Sampling SamplingProfiles `yaml:"sampling"`
	Examples []string         `yaml:"examples"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"`
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
}

// EngineConfig selects the generation engine shared by both paths.
type EngineConfig struct {
	// Name is one of mock, openai, anthropic, google.
	Name string `yaml:"name"`
	// Model is the provider model identifier; empty selects the
	// engine's default.
	Model string `yaml:"model"`
	// Serialize funnels calls through a single slot for inference
	// runtimes that are not reentrant.
	Serialize bool `yaml:"serialize"`
	// TimeoutSeconds bounds each generation call; zero disables the bound.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// SamplingProfiles holds the per-path decoding profiles.
type SamplingProfiles struct {
	Direct engine.SamplingConfig `yaml:"direct"`
	Routed engine.SamplingConfig `yaml:"routed"`
}

// engineNames are the accepted engine selectors.
var engineNames = map[string]bool{
	"mock":      true,
	"openai":    true,
	"anthropic": true,
	"google":    true,
}

// Load reads configuration from the user config file and environment
// variables. Environment variables take precedence over file values.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return load(filepath.Join(configDir, "config.yaml"), configDir)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path, filepath.Dir(path))
}

func load(path, configDir string) (*Config, error) {
	fileConfig := loadFileConfig(path)

	cfg := &Config{
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		GoogleAPIKey:    getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google),
		Engine:          fileConfig.Engine,
		Sampling:        fileConfig.Sampling,
		Examples:        fileConfig.Examples,
		ConfigDir:       configDir,
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration: mock engine, stock sampling
// profiles, and the stock example prompts.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.Name == "" {
		cfg.Engine.Name = "mock"
	}
	if cfg.Sampling.Direct.MaxNewTokens == 0 {
		cfg.Sampling.Direct = engine.DirectProfile()
	}
	if cfg.Sampling.Routed.MaxNewTokens == 0 {
		cfg.Sampling.Routed = engine.RoutedProfile()
	}
	if len(cfg.Examples) == 0 {
		cfg.Examples = DefaultExamples()
	}
}

// Validate checks engine selection and sampling profiles.
func (c *Config) Validate() error {
	if !engineNames[c.Engine.Name] {
		return fmt.Errorf("unknown engine %q", c.Engine.Name)
	}
	if c.Engine.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.Engine.TimeoutSeconds)
	}
	if err := c.Sampling.Direct.Validate(); err != nil {
		return fmt.Errorf("sampling.direct: %w", err)
	}
	if err := c.Sampling.Routed.Validate(); err != nil {
		return fmt.Errorf("sampling.routed: %w", err)
	}
	return nil
}

// HasEngine returns true if the named engine can be constructed with the
// configured credentials.
func (c *Config) HasEngine(name string) bool {
	switch name {
	case "mock":
		return true
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	default:
		return false
	}
}

// DefaultExamples returns the stock example prompts: a mix of arithmetic
// queries the routed path answers with the calculator, and open-ended
// prompts both paths answer via generation.
func DefaultExamples() []string {
	return []string{
		"What is 15 * 3?",
		"Tell me a short story about a brave knight.",
		"Calculate (20 + 5) / 5.",
		"Explain the concept of artificial intelligence.",
		"What is 1000 - 123?",
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // Return empty config if file doesn't exist
	}

	_ = yaml.Unmarshal(data, cfg) // Ignore parse errors, use defaults
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".duet")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
