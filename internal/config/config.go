// Package config provides configuration loading and structs for the Debatable server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Mocks      bool             `yaml:"mocks"`
	Server     ServerConfig     `yaml:"server"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Perplexity PerplexityConfig `yaml:"perplexity"`
	Limits     LimitsConfig     `yaml:"limits"`
	Extraction ExtractionConfig `yaml:"extraction"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// OpenAIConfig holds settings for the OpenAI chat and transcription clients.
// APIKey is normally supplied via the OPENAI_API_KEY environment variable.
type OpenAIConfig struct {
	APIKey             string  `yaml:"api_key"`
	Model              string  `yaml:"model"`
	TranscriptionModel string  `yaml:"transcription_model"`
	Temperature        float64 `yaml:"temperature"`
	MaxTokens          int     `yaml:"max_tokens"`
	TimeoutSeconds     int     `yaml:"timeout_seconds"`
}

// PerplexityConfig holds settings for the search-augmented LLM used by the
// reading recommender. The API is OpenAI-compatible, so only the base URL and
// model differ. APIKey is normally supplied via PERPLEXITY_API_KEY.
type PerplexityConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LimitsConfig holds input-size and timeout bounds for the pipeline.
type LimitsConfig struct {
	MaxUploadMB         int `yaml:"max_upload_mb"`
	MaxAudioMB          int `yaml:"max_audio_mb"`
	MaxLLMInputChars    int `yaml:"max_llm_input_chars"`
	MinTranscriptChars  int `yaml:"min_transcript_chars"`
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	ParseTimeoutSeconds int `yaml:"parse_timeout_seconds"`
	CacheTTLSeconds     int `yaml:"cache_ttl_seconds"`
}

// ExtractionConfig holds defaults for the heuristic topic extractor.
type ExtractionConfig struct {
	MinConfidence        float64 `yaml:"min_confidence"`
	MaxTopics            int     `yaml:"max_topics"`
	ExtractCounterpoints *bool   `yaml:"extract_counterpoints"`
	Language             string  `yaml:"language"`
}

// CounterpointsOrDefault returns whether counterpoint extraction is enabled;
// defaults to true when unset.
func (e *ExtractionConfig) CounterpointsOrDefault() bool {
	if e.ExtractCounterpoints != nil {
		return *e.ExtractCounterpoints
	}
	return true
}

// Load reads and parses the config file at path, applies defaults, and folds
// in environment overrides (OPENAI_API_KEY, PERPLEXITY_API_KEY,
// DEBATABLE_MOCKS). Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overrides secrets and toggles from the environment. Environment
// values win over file values so deployments never need keys on disk.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("PERPLEXITY_API_KEY"); v != "" {
		cfg.Perplexity.APIKey = v
	}
	if v := os.Getenv("DEBATABLE_MOCKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Mocks = b
		}
	}
}
