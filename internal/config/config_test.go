package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PONDER_PROVIDER", "")
	t.Setenv("PONDER_API_KEY", "")
	t.Setenv("PONDER_MODEL", "")
	t.Setenv("PONDER_BASE_URL", "")
	t.Setenv("PONDER_HISTORY_DB", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "ponder" {
		t.Errorf("expected Name=ponder, got %s", cfg.Name)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("expected Provider=gemini, got %s", cfg.LLM.Provider)
	}
	if cfg.Status.ThrottleMs != 1500 {
		t.Errorf("expected ThrottleMs=1500, got %d", cfg.Status.ThrottleMs)
	}
	if cfg.Status.MaxLength != 70 {
		t.Errorf("expected MaxLength=70, got %d", cfg.Status.MaxLength)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "sk-test"
	cfg.Status.ThrottleMs = 700

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LLM.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %s", loaded.LLM.Provider)
	}
	if loaded.LLM.APIKey != "sk-test" {
		t.Errorf("expected APIKey=sk-test, got %s", loaded.LLM.APIKey)
	}
	if loaded.Status.ThrottleMs != 700 {
		t.Errorf("expected ThrottleMs=700, got %d", loaded.Status.ThrottleMs)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	clearConfigEnv(t)

	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file should fall back to defaults, got %v", err)
	}
	if loaded.Name != "ponder" {
		t.Errorf("expected default Name=ponder, got %s", loaded.Name)
	}
	if loaded.Status.MinLength != 15 {
		t.Errorf("expected default MinLength=15, got %d", loaded.Status.MinLength)
	}
}

func TestConfig_LoadPartialYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := []byte("status:\n  throttle_ms: 400\n  verbose: true\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Listed fields are taken from the file, everything else keeps defaults.
	if loaded.Status.ThrottleMs != 400 {
		t.Errorf("expected ThrottleMs=400, got %d", loaded.Status.ThrottleMs)
	}
	if !loaded.Status.Verbose {
		t.Error("expected Verbose=true from file")
	}
	if loaded.Status.MinLength != 15 {
		t.Errorf("expected default MinLength=15, got %d", loaded.Status.MinLength)
	}
	if loaded.LLM.Provider != "gemini" {
		t.Errorf("expected default Provider=gemini, got %s", loaded.LLM.Provider)
	}
}

func TestConfig_LoadMalformedYAML(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("status: [not a map"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}

	cfg.LLM.Provider = "invalid-provider"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}

	cfg = DefaultConfig()
	cfg.Status.MinLength = 90
	cfg.Status.MaxLength = 70
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for min_length > max_length")
	}

	cfg = DefaultConfig()
	cfg.Status.MinLength = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative min_length")
	}

	cfg = DefaultConfig()
	cfg.History.Enabled = true
	cfg.History.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for history without a path")
	}
}

func TestConfig_Engine(t *testing.T) {
	cfg := DefaultConfig()
	engine := cfg.Engine()
	if engine.MinLength != 15 || engine.MinWordCount != 3 || engine.ThrottleMs != 1500 || engine.MaxLength != 70 {
		t.Errorf("expected default engine config, got %+v", engine)
	}

	// Zero-valued fields fall back to engine defaults.
	cfg.Status = StatusConfig{ThrottleMs: 250}
	engine = cfg.Engine()
	if engine.ThrottleMs != 250 {
		t.Errorf("expected ThrottleMs=250, got %d", engine.ThrottleMs)
	}
	if engine.MinLength != 15 {
		t.Errorf("expected fallback MinLength=15, got %d", engine.MinLength)
	}

	// An over-long minimum is clamped to the maximum.
	cfg.Status = StatusConfig{MinLength: 200, MaxLength: 50}
	engine = cfg.Engine()
	if engine.MinLength != 50 {
		t.Errorf("expected clamped MinLength=50, got %d", engine.MinLength)
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetLLMTimeout() == 0 {
		t.Error("GetLLMTimeout should return non-zero duration")
	}

	cfg.LLM.Timeout = "bogus"
	if got := cfg.GetLLMTimeout().Seconds(); got != 120 {
		t.Errorf("expected 120s fallback for bad timeout, got %vs", got)
	}

	if DefaultPath() != filepath.Join(".ponder", "config.yaml") {
		t.Errorf("unexpected DefaultPath: %s", DefaultPath())
	}
}
