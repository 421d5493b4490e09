package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. It is embedded in the
// application config under the "llm" key; env tags allow overrides.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `yaml:"provider" env:"WORDSPROUT_LLM_PROVIDER" env-default:"mock"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout is the maximum duration for a single LLM request
	// (including retries).
	Timeout time.Duration `yaml:"timeout" env:"WORDSPROUT_LLM_TIMEOUT" env-default:"30s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"WORDSPROUT_ANTHROPIC_API_KEY"`
	Model  string `yaml:"model"   env:"WORDSPROUT_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"  env:"WORDSPROUT_OPENAI_API_KEY"`
	Model   string `yaml:"model"    env:"WORDSPROUT_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"WORDSPROUT_OPENAI_BASE_URL"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"WORDSPROUT_GEMINI_API_KEY"`
	Model  string `yaml:"model"   env:"WORDSPROUT_GEMINI_MODEL" env-default:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"  env:"WORDSPROUT_OPENROUTER_API_KEY"`
	Model   string `yaml:"model"    env:"WORDSPROUT_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-exp"`
	BaseURL string `yaml:"base_url" env:"WORDSPROUT_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait"     env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier"   env-default:"2.0"`
}

// DefaultConfig returns a Config with the same defaults as the env-default tags.
func DefaultConfig() Config {
	return Config{
		Provider: "mock",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ErrMissingAPIKey is returned by Validate when the selected provider has no key.
var ErrMissingAPIKey = errors.New("missing API key")

// providerKey ties a provider name to its key field and the env vars that
// carry it. Discovery walks providerKeys in order.
type providerKey struct {
	name      string
	configEnv string // WORDSPROUT_* override
	stdEnv    string // the vendor's conventional variable
	key       func(*Config) *string
}

var providerKeys = []providerKey{
	{"gemini", "WORDSPROUT_GEMINI_API_KEY", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "WORDSPROUT_OPENAI_API_KEY", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "WORDSPROUT_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "WORDSPROUT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

func lookupProvider(name string) (providerKey, bool) {
	for _, pk := range providerKeys {
		if pk.name == name {
			return pk, true
		}
	}
	return providerKey{}, false
}

// DiscoverConfig returns base switched to the first provider whose
// conventional API key env var is set (Gemini, OpenAI, Anthropic, then
// OpenRouter). It returns (base, false) when none is set.
func DiscoverConfig(base Config) (Config, bool) {
	for _, pk := range providerKeys {
		if k := os.Getenv(pk.stdEnv); k != "" {
			cfg := base
			cfg.Provider = pk.name
			*pk.key(&cfg) = k
			return cfg, true
		}
	}
	return base, false
}

// Validate checks that the selected provider is known and has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	pk, ok := lookupProvider(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *pk.key(&c) == "" {
		return fmt.Errorf("%s provider: %w (set %s)", pk.name, ErrMissingAPIKey, pk.configEnv)
	}
	return nil
}
