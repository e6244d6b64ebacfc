// Package config provides the configuration schema, loader, and provider
// registry for the Sahayak assistant.
package config

import (
	"os"
	"strings"
)

// LogLevel controls log verbosity for the Sahayak process.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// APIKeyPlaceholder is the template value shipped in example configs. A key
// equal to it is treated as absent so a fresh checkout degrades gracefully
// instead of sending the placeholder to a provider.
const APIKeyPlaceholder = "your_api_key_here"

// Config is the root configuration structure for Sahayak.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Assistant AssistantConfig `yaml:"assistant"`
	Providers ProvidersConfig `yaml:"providers"`
}

// ServerConfig holds network and logging settings for the admin endpoints.
type ServerConfig struct {
	// ListenAddr is the TCP address the admin server listens on
	// (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// AssistantConfig holds conversational defaults.
type AssistantConfig struct {
	// DefaultLanguage is the language the session starts in
	// ("english", "kannada", or "hindi"). Defaults to english.
	DefaultLanguage string `yaml:"default_language"`

	// Location is the region reported by the weather advisory.
	Location string `yaml:"location"`
}

// ProvidersConfig declares which provider implementation to use for each
// pipeline stage. Each field selects a named provider registered in the
// [Registry].
type ProvidersConfig struct {
	// LLM backs the remote query gateway.
	LLM ProviderEntry `yaml:"llm"`

	// TTS synthesizes Kannada speech remotely.
	TTS ProviderEntry `yaml:"tts"`

	// STT runs voice recognition.
	STT ProviderEntry `yaml:"stt"`
}

// ProviderEntry is the common configuration block shared by all provider
// types. The Name field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation
	// (e.g., "gemini", "whisper"). Empty disables the stage.
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API, if any. The
	// value [APIKeyPlaceholder] counts as unset.
	APIKey string `yaml:"api_key"`

	// APIKeyEnv names an environment variable consulted when APIKey is
	// unset or the placeholder.
	APIKeyEnv string `yaml:"api_key_env"`

	// BaseURL overrides the provider's default API endpoint. Required for
	// self-hosted providers such as whisper.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider
	// (e.g., "gemini-1.5-flash").
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by
	// the standard fields above.
	Options map[string]any `yaml:"options"`
}

// Configured reports whether the entry names a provider implementation.
func (e ProviderEntry) Configured() bool {
	return e.Name != ""
}

// ResolvedAPIKey returns the usable API key for this entry: the configured
// key unless it is empty or the placeholder, in which case the APIKeyEnv
// environment variable is consulted. Returns "" when no real key exists.
func (e ProviderEntry) ResolvedAPIKey() string {
	key := strings.TrimSpace(e.APIKey)
	if key != "" && key != APIKeyPlaceholder {
		return key
	}
	if e.APIKeyEnv != "" {
		return strings.TrimSpace(os.Getenv(e.APIKeyEnv))
	}
	return ""
}
