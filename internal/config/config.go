package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	VariantFull    = "full"
	VariantSummary = "summary"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Minutes     MinutesConfig     `yaml:"minutes"`
	Document    DocumentConfig    `yaml:"document"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
}

// DefaultTemperature applies when upstream.temperature is not set.
const DefaultTemperature float32 = 0.3

type UpstreamConfig struct {
	Provider           string   `yaml:"provider"`
	APIKey             string   `yaml:"api_key"`
	Model              string   `yaml:"model"`
	BaseURL            string   `yaml:"base_url"`
	TranscriptionModel string   `yaml:"transcription_model"`
	TranscriptionLang  string   `yaml:"transcription_language"`
	TranscriptionHint  string   `yaml:"transcription_prompt"`
	Temperature        *float32 `yaml:"temperature"`
	InlineLimitBytes   int64    `yaml:"inline_limit_bytes"`
}

// SamplingTemperature returns the configured temperature, or
// DefaultTemperature when none was set. An explicit 0 is kept.
func (u UpstreamConfig) SamplingTemperature() float32 {
	if u.Temperature == nil {
		return DefaultTemperature
	}
	return *u.Temperature
}

type MinutesConfig struct {
	Variant  string `yaml:"variant"`
	Language string `yaml:"language"`
}

type DocumentConfig struct {
	Title      string `yaml:"title"`
	FontFamily string `yaml:"font_family"`
	FontSize   uint64 `yaml:"font_size"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Load reads a YAML config file, fills API keys from the environment (and a
// .env file in the working directory, if any) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", ErrInvalid, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.Upstream.APIKey == "" {
		switch c.Upstream.Provider {
		case ProviderOpenAI:
			c.Upstream.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			c.Upstream.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if c.Server.APIKey == "" {
		c.Server.APIKey = os.Getenv("MINUTES_API_KEY")
	}
}

func (c *Config) Validate() error {
	if c.Upstream.Provider == "" {
		c.Upstream.Provider = ProviderGemini
	}
	if c.Upstream.Provider != ProviderGemini && c.Upstream.Provider != ProviderOpenAI {
		return fmt.Errorf("%w: upstream.provider %q is not supported", ErrInvalid, c.Upstream.Provider)
	}
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("%w: upstream.api_key is required", ErrInvalid)
	}
	if c.Minutes.Variant == "" {
		c.Minutes.Variant = VariantFull
	}
	if c.Minutes.Variant != VariantFull && c.Minutes.Variant != VariantSummary {
		return fmt.Errorf("%w: minutes.variant %q is not supported", ErrInvalid, c.Minutes.Variant)
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("%w: paths.input is required", ErrInvalid)
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("%w: paths.output is required", ErrInvalid)
	}

	if c.Upstream.Model == "" {
		if c.Upstream.Provider == ProviderOpenAI {
			c.Upstream.Model = "gpt-4o"
		} else {
			c.Upstream.Model = "gemini-2.5-flash"
		}
	}
	if c.Upstream.TranscriptionModel == "" {
		c.Upstream.TranscriptionModel = "whisper-1"
	}
	if c.Upstream.TranscriptionLang == "" {
		c.Upstream.TranscriptionLang = "zh"
	}
	if c.Upstream.Temperature == nil {
		t := DefaultTemperature
		c.Upstream.Temperature = &t
	}
	if t := *c.Upstream.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("%w: upstream.temperature %v is outside [0, 2]", ErrInvalid, t)
	}
	if c.Upstream.InlineLimitBytes == 0 {
		c.Upstream.InlineLimitBytes = 15 << 20
	}
	if c.Minutes.Language == "" {
		c.Minutes.Language = "Traditional Chinese (Taiwan)"
	}
	if c.Document.FontFamily == "" {
		c.Document.FontFamily = "Microsoft JhengHei"
	}
	if c.Document.FontSize == 0 {
		c.Document.FontSize = 12
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 100 << 20
	}

	return nil
}
