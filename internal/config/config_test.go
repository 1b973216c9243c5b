package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.OpenAI.Model != "gpt-4-turbo-preview" {
		t.Errorf("Model = %s, want gpt-4-turbo-preview", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", cfg.OpenAI.MaxTokens)
	}
	if cfg.OpenAI.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.OpenAI.MaxRetries)
	}
	if cfg.OpenAI.RequestTimeout != 120*time.Second {
		t.Errorf("RequestTimeout = %v, want 120s", cfg.OpenAI.RequestTimeout)
	}
	if cfg.QualityThreshold != 0.75 {
		t.Errorf("QualityThreshold = %f, want 0.75", cfg.QualityThreshold)
	}
	if cfg.DailyCostLimitUSD != 50.0 {
		t.Errorf("DailyCostLimitUSD = %f, want 50", cfg.DailyCostLimitUSD)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-3.5-turbo")
	t.Setenv("OPENAI_MAX_TOKENS", "2000")
	t.Setenv("QUALITY_THRESHOLD", "0.9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("Model = %s, want gpt-3.5-turbo", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", cfg.OpenAI.MaxTokens)
	}
	if cfg.QualityThreshold != 0.9 {
		t.Errorf("QualityThreshold = %f, want 0.9", cfg.QualityThreshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.OpenAI.APIKey = "sk-test" }, false},
		{"missing_api_key", func(c *Config) { c.OpenAI.APIKey = "" }, true},
		{"empty_model", func(c *Config) {
			c.OpenAI.APIKey = "sk-test"
			c.OpenAI.Model = ""
		}, true},
		{"threshold_out_of_range", func(c *Config) {
			c.OpenAI.APIKey = "sk-test"
			c.QualityThreshold = 1.5
		}, true},
		{"negative_retries", func(c *Config) {
			c.OpenAI.APIKey = "sk-test"
			c.OpenAI.MaxRetries = -1
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
