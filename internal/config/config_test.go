package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
openai:
  model: "gpt-4o"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model override lost: %s", cfg.OpenAI.Model)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_defaults(t *testing.T) {
	path := writeConfig(t, "{}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Limits.MaxUploadMB != 10 {
		t.Errorf("MaxUploadMB default = %d, want 10", cfg.Limits.MaxUploadMB)
	}
	if cfg.Limits.MaxAudioMB != 25 {
		t.Errorf("MaxAudioMB default = %d, want 25", cfg.Limits.MaxAudioMB)
	}
	if cfg.Limits.MaxLLMInputChars != 12000 {
		t.Errorf("MaxLLMInputChars default = %d, want 12000", cfg.Limits.MaxLLMInputChars)
	}
	if cfg.Limits.MinTranscriptChars != 50 {
		t.Errorf("MinTranscriptChars default = %d, want 50", cfg.Limits.MinTranscriptChars)
	}
	if cfg.Extraction.MinConfidence != 0.6 {
		t.Errorf("MinConfidence default = %v, want 0.6", cfg.Extraction.MinConfidence)
	}
	if cfg.Extraction.MaxTopics != 5 {
		t.Errorf("MaxTopics default = %d, want 5", cfg.Extraction.MaxTopics)
	}
	if !cfg.Extraction.CounterpointsOrDefault() {
		t.Error("counterpoints should default to true")
	}
	if cfg.Perplexity.BaseURL != "https://api.perplexity.ai" {
		t.Errorf("perplexity base URL default = %s", cfg.Perplexity.BaseURL)
	}
}

func TestLoad_counterpointsExplicitFalse(t *testing.T) {
	path := writeConfig(t, `
extraction:
  extract_counterpoints: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extraction.CounterpointsOrDefault() {
		t.Error("explicit false should survive defaulting")
	}
}

func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("DEBATABLE_MOCKS", "true")
	path := writeConfig(t, `
openai:
  api_key: "sk-file"
mocks: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenAI.APIKey != "sk-env" {
		t.Errorf("env key should win, got %s", cfg.OpenAI.APIKey)
	}
	if !cfg.Mocks {
		t.Error("DEBATABLE_MOCKS=true should force mocks on")
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
