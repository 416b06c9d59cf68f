package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Upstream: UpstreamConfig{APIKey: "key"},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"openai provider", func(c *Config) { c.Upstream.Provider = ProviderOpenAI }, false},
		{"summary variant", func(c *Config) { c.Minutes.Variant = VariantSummary }, false},
		{"unknown provider", func(c *Config) { c.Upstream.Provider = "acme" }, true},
		{"missing api key", func(c *Config) { c.Upstream.APIKey = "" }, true},
		{"unknown variant", func(c *Config) { c.Minutes.Variant = "huge" }, true},
		{"missing input", func(c *Config) { c.Paths.Input = "" }, true},
		{"missing output", func(c *Config) { c.Paths.Output = "" }, true},
		{"zero temperature", func(c *Config) { c.Upstream.Temperature = new(float32) }, false},
		{"negative temperature", func(c *Config) { t := float32(-0.5); c.Upstream.Temperature = &t }, true},
		{"temperature too high", func(c *Config) { t := float32(2.5); c.Upstream.Temperature = &t }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Upstream.Provider != ProviderGemini {
		t.Errorf("Provider = %v, want %v", cfg.Upstream.Provider, ProviderGemini)
	}
	if cfg.Upstream.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want %v", cfg.Upstream.Model, "gemini-2.5-flash")
	}
	if cfg.Minutes.Variant != VariantFull {
		t.Errorf("Variant = %v, want %v", cfg.Minutes.Variant, VariantFull)
	}
	if cfg.Upstream.Temperature == nil || *cfg.Upstream.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Upstream.Temperature, DefaultTemperature)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Document.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", cfg.Document.FontSize)
	}

	openai := validConfig()
	openai.Upstream.Provider = ProviderOpenAI
	if err := openai.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if openai.Upstream.Model != "gpt-4o" {
		t.Errorf("Model = %v, want %v", openai.Upstream.Model, "gpt-4o")
	}
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	content := `
upstream:
  provider: "gemini"
  api_key: "test-key"
  model: "gemini-2.5-pro"

minutes:
  variant: "summary"
  language: "English"

document:
  title: "Weekly Sync"
  font_family: "Arial"
  font_size: 11

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %v, want %v", cfg.Upstream.Model, "gemini-2.5-pro")
	}
	if cfg.Minutes.Variant != VariantSummary {
		t.Errorf("Variant = %v, want %v", cfg.Minutes.Variant, VariantSummary)
	}
	if cfg.Document.FontFamily != "Arial" {
		t.Errorf("FontFamily = %v, want %v", cfg.Document.FontFamily, "Arial")
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %v, want %v", cfg.Logging.Format, "json")
	}
}

func TestLoadKeyFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "env-key")

	content := `
upstream:
  provider: "openai"
paths:
  input: "in"
  output: "out"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.APIKey != "env-key" {
		t.Errorf("APIKey = %v, want %v", cfg.Upstream.APIKey, "env-key")
	}
}

func TestLoadKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=dotenv-key\n"), 0644); err != nil {
		t.Fatal(err)
	}
	content := "paths:\n  input: in\n  output: out\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.APIKey != "dotenv-key" {
		t.Errorf("APIKey = %v, want %v", cfg.Upstream.APIKey, "dotenv-key")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadZeroTemperature(t *testing.T) {
	t.Chdir(t.TempDir())

	content := `
upstream:
  api_key: "test-key"
  temperature: 0
paths:
  input: "data/input"
  output: "data/output"
`
	if err := os.WriteFile("config.yaml", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Upstream.SamplingTemperature(); got != 0 {
		t.Errorf("SamplingTemperature() = %v, want 0", got)
	}
}

func TestSamplingTemperatureDefault(t *testing.T) {
	if got := (UpstreamConfig{}).SamplingTemperature(); got != DefaultTemperature {
		t.Errorf("SamplingTemperature() = %v, want %v", got, DefaultTemperature)
	}
}
