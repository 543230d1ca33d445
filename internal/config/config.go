// Package config holds all ponder configuration, loaded from
// .ponder/config.yaml with environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"ponder/internal/status"
)

// Config holds all ponder configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Reasoning stream provider
	LLM LLMConfig `yaml:"llm"`

	// Status extraction engine
	Status StatusConfig `yaml:"status"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Session history persistence
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the reasoning stream provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, scripted
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// StatusConfig configures the status extraction engine. Verbose switches the
// chat view to showing fine-grained extracted sentences under the status
// pill instead of phase messages alone.
type StatusConfig struct {
	MinLength    int  `yaml:"min_length"`
	MinWordCount int  `yaml:"min_word_count"`
	ThrottleMs   int  `yaml:"throttle_ms"`
	MaxLength    int  `yaml:"max_length"`
	Verbose      bool `yaml:"verbose"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme    string `yaml:"theme"` // dark, light
	Markdown bool   `yaml:"markdown"`
}

// HistoryConfig configures session history persistence.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures categorized file logging. The same section is
// read independently by internal/logging to avoid an import cycle.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ponder",
		Version: "0.3.0",

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  "120s",
		},

		Status: StatusConfig{
			MinLength:    15,
			MinWordCount: 3,
			ThrottleMs:   1500,
			MaxLength:    70,
		},

		UI: UIConfig{
			Theme:    "dark",
			Markdown: true,
		},

		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(".ponder", "history.db"),
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the workspace-local config location.
func DefaultPath() string {
	return filepath.Join(".ponder", "config.yaml")
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// Provider API keys, in priority order. A provider-specific key also
	// selects that provider unless one was set explicitly.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = "gemini"
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "openai"
	}

	// Ponder-specific overrides win over everything.
	if v := os.Getenv("PONDER_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("PONDER_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("PONDER_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("PONDER_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("PONDER_HISTORY_DB"); v != "" {
		c.History.Path = v
	}
}

// GetLLMTimeout returns the provider timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// Engine converts the status section into the extraction engine's config.
// Non-positive fields fall back to the engine defaults so a partial YAML
// section cannot produce an invalid engine.
func (c *Config) Engine() status.Config {
	cfg := status.DefaultConfig()
	if c.Status.MinLength > 0 {
		cfg.MinLength = c.Status.MinLength
	}
	if c.Status.MinWordCount > 0 {
		cfg.MinWordCount = c.Status.MinWordCount
	}
	if c.Status.ThrottleMs > 0 {
		cfg.ThrottleMs = c.Status.ThrottleMs
	}
	if c.Status.MaxLength > 0 {
		cfg.MaxLength = c.Status.MaxLength
	}
	if cfg.MinLength > cfg.MaxLength {
		cfg.MinLength = cfg.MaxLength
	}
	return cfg
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai", "scripted":
	default:
		return fmt.Errorf("unknown provider %q", c.LLM.Provider)
	}
	if c.Status.MinLength < 0 || c.Status.MaxLength < 0 {
		return fmt.Errorf("status lengths must not be negative")
	}
	if c.Status.MinLength > 0 && c.Status.MaxLength > 0 && c.Status.MinLength > c.Status.MaxLength {
		return fmt.Errorf("status min_length %d exceeds max_length %d", c.Status.MinLength, c.Status.MaxLength)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history enabled without a path")
	}
	return nil
}
