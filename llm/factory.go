// LLM Provider Factory.
//
// Providers are built from an explicit ProviderConfig value; there is
// no ambient credential state. A missing or wrong API key is not
// validated here - it surfaces as an authentication failure on the
// first request.

package llm

import (
	"fmt"
	"strings"
)

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderOpenAI is the OpenAI provider (GPT models).
	ProviderOpenAI ProviderType = iota
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic
	// ProviderDeepSeek is the DeepSeek provider.
	ProviderDeepSeek
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderDeepSeek:
		return "deepseek"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "deepseek":
		return ProviderDeepSeek, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// ProviderConfig holds everything needed to construct a provider.
type ProviderConfig struct {
	Provider    string
	Model       string
	APIKey      string
	MaxTokens   uint32
	Temperature float32
	// ChatModels is the chat-capable model set; only the OpenAI
	// provider distinguishes request shapes by it.
	ChatModels []string
}

// NewProvider builds a provider from the given configuration.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	providerType, err := ParseProviderType(cfg.Provider)
	if err != nil {
		return nil, err
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	switch providerType {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, maxTokens, cfg.Temperature, cfg.ChatModels), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, maxTokens, cfg.Temperature), nil
	case ProviderDeepSeek:
		return NewDeepSeekProvider(cfg.APIKey, cfg.Model, maxTokens, cfg.Temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(cfg.APIKey, cfg.Model, maxTokens, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", providerType)
	}
}
