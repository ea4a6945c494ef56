package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.TranscriptionModel == "" {
		cfg.OpenAI.TranscriptionModel = "whisper-1"
	}
	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = 0.7
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = 2000
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = 45
	}
	if cfg.Perplexity.BaseURL == "" {
		cfg.Perplexity.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Perplexity.Model == "" {
		cfg.Perplexity.Model = "sonar"
	}
	if cfg.Perplexity.TimeoutSeconds == 0 {
		cfg.Perplexity.TimeoutSeconds = 30
	}
	if cfg.Limits.MaxUploadMB == 0 {
		cfg.Limits.MaxUploadMB = 10
	}
	if cfg.Limits.MaxAudioMB == 0 {
		cfg.Limits.MaxAudioMB = 25
	}
	if cfg.Limits.MaxLLMInputChars == 0 {
		cfg.Limits.MaxLLMInputChars = 12000
	}
	if cfg.Limits.MinTranscriptChars == 0 {
		cfg.Limits.MinTranscriptChars = 50
	}
	if cfg.Limits.FetchTimeoutSeconds == 0 {
		cfg.Limits.FetchTimeoutSeconds = 15
	}
	if cfg.Limits.ParseTimeoutSeconds == 0 {
		cfg.Limits.ParseTimeoutSeconds = 30
	}
	if cfg.Limits.CacheTTLSeconds == 0 {
		cfg.Limits.CacheTTLSeconds = 300
	}
	if cfg.Extraction.MinConfidence == 0 {
		cfg.Extraction.MinConfidence = 0.6
	}
	if cfg.Extraction.MaxTopics == 0 {
		cfg.Extraction.MaxTopics = 5
	}
	if cfg.Extraction.Language == "" {
		cfg.Extraction.Language = "english"
	}
	if cfg.Extraction.ExtractCounterpoints == nil {
		t := true
		cfg.Extraction.ExtractCounterpoints = &t
	}
}
