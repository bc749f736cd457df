// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific credential and model lookup

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// fallbackAPIKey is the compiled-in credential used when the provider's
// environment variable is unset. An empty credential is not rejected
// here; it surfaces as an authentication failure on the first request.
const fallbackAPIKey = ""

// historyFileName is the history database file placed next to the binary.
const historyFileName = ".chatcli-history.db"

// Settings holds all application configuration. Constructed once at
// process start and never mutated afterwards.
type Settings struct {
	LLM      LLMConfig
	History  HistoryConfig
	LogLevel string
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	MaxTokens   uint32
	Temperature float64
	// ChatModels lists the model identifiers that take the full turn
	// sequence per request. Models outside this set get only the latest
	// prompt via the legacy completions API.
	ChatModels []string
}

// HistoryConfig holds history store configuration.
type HistoryConfig struct {
	Path string
}

// providerInfo holds configuration for a specific LLM provider.
type providerInfo struct {
	modelEnv     string
	defaultModel string
	apiKeyEnv    string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"openai":    {"OPENAI_MODEL", "gpt-3.5-turbo", "OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_MODEL", "claude-sonnet-4-20250514", "ANTHROPIC_API_KEY"},
	"deepseek":  {"DEEPSEEK_MODEL", "deepseek-chat", "DEEPSEEK_API_KEY"},
	"gemini":    {"GEMINI_MODEL", "gemini-2.5-flash", "GEMINI_API_KEY"},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"google": "gemini",
	"gpt":    "openai",
}

// defaultChatModels are the OpenAI model identifiers known to speak the
// multi-turn chat API. Overridable via OPENAI_CHAT_MODELS.
var defaultChatModels = []string{
	"gpt-4",
	"gpt-4-0613",
	"gpt-4-32k",
	"gpt-4-32k-0613",
	"gpt-3.5-turbo",
	"gpt-3.5-turbo-0613",
	"gpt-3.5-turbo-16k",
	"gpt-3.5-turbo-16k-0613",
	"gpt-4o",
	"gpt-4o-mini",
}

// New creates settings for the specified provider, loading values from
// environment variables. An empty provider selects openai. Returns an
// error if the provider is unknown or an environment variable contains
// an invalid value.
func New(provider string) (Settings, error) {
	if provider == "" {
		provider = "openai"
	}
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return Settings{}, err
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 4096)
	if err != nil {
		return Settings{}, err
	}

	temperature, err := getEnvFloat64("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return Settings{}, err
	}

	model := os.Getenv(info.modelEnv)
	if model == "" {
		model = info.defaultModel
	}

	apiKey := os.Getenv(info.apiKeyEnv)
	if apiKey == "" {
		apiKey = fallbackAPIKey
	}

	historyPath := os.Getenv("CHATCLI_HISTORY_DB")
	if historyPath == "" {
		historyPath = DefaultHistoryPath()
	}

	return Settings{
		LLM: LLMConfig{
			Provider:    provider,
			Model:       model,
			APIKey:      apiKey,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			ChatModels:  getEnvList("OPENAI_CHAT_MODELS", defaultChatModels),
		},
		History: HistoryConfig{
			Path: historyPath,
		},
		LogLevel: os.Getenv("CHATCLI_LOG_LEVEL"),
	}, nil
}

// DefaultHistoryPath returns the fixed history database location next
// to the installed binary, falling back to the working directory when
// the executable path cannot be resolved.
func DefaultHistoryPath() string {
	exe, err := os.Executable()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(filepath.Dir(exe), historyFileName)
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(provider)
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

// getProviderInfo returns configuration for a provider.
func getProviderInfo(provider string) (providerInfo, error) {
	info, ok := providers[provider]
	if !ok {
		return providerInfo{}, fmt.Errorf("unknown provider: %q", provider)
	}
	return info, nil
}

// SupportedProviders returns the list of supported provider names.
func SupportedProviders() []string {
	result := make([]string, 0, len(providers))
	for name := range providers {
		result = append(result, name)
	}
	return result
}

// Environment variable helpers with proper error handling

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat64(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return f, nil
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
