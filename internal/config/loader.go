package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ruralconnect/sahayak/internal/i18n"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"llm": {"gemini", "openai", "anthropic", "ollama", "mistral", "mock"},
	"tts": {"google"},
	"stt": {"whisper"},
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Assistant.DefaultLanguage != "" {
		if _, err := i18n.Parse(cfg.Assistant.DefaultLanguage); err != nil {
			errs = append(errs, fmt.Errorf("assistant.default_language %q is invalid; valid values: english, kannada, hindi", cfg.Assistant.DefaultLanguage))
		}
	}

	validateProviderName("llm", cfg.Providers.LLM.Name)
	validateProviderName("tts", cfg.Providers.TTS.Name)
	validateProviderName("stt", cfg.Providers.STT.Name)

	if cfg.Providers.STT.Name == "whisper" && cfg.Providers.STT.BaseURL == "" {
		errs = append(errs, errors.New("providers.stt.base_url is required for the whisper provider"))
	}

	if !cfg.Providers.LLM.Configured() {
		slog.Warn("no LLM provider configured; remote queries will be answered with the not-configured advisory")
	} else if cfg.Providers.LLM.Name != "mock" && cfg.Providers.LLM.Name != "ollama" && cfg.Providers.LLM.ResolvedAPIKey() == "" {
		slog.Warn("LLM provider has no usable API key; remote queries will be answered with the not-configured advisory",
			"provider", cfg.Providers.LLM.Name,
		)
	}

	if cfg.Providers.TTS.Configured() && cfg.Providers.TTS.ResolvedAPIKey() == "" {
		slog.Warn("TTS provider has no usable API key; Kannada speech output will be unavailable",
			"provider", cfg.Providers.TTS.Name,
		)
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
