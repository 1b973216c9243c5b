package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port int
	Env  string

	// OpenAI-compatible completion API
	OpenAI OpenAIConfig

	// Generation defaults
	QualityThreshold float64
	MaxTestCases     int

	// Cost alerting
	DailyCostLimitUSD   float64
	MonthlyCostLimitUSD float64

	// Optional durable mirrors for usage records
	RedisURL    string
	DatabaseURL string
}

// OpenAIConfig holds completion-API settings
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	Temperature    float64
	MaxRetries     int
	RequestTimeout time.Duration
	// Outbound requests per second, 0 disables pacing
	RequestsPerSecond float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		OpenAI: OpenAIConfig{
			APIKey:            getEnv("OPENAI_API_KEY", ""),
			BaseURL:           getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:             getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			MaxTokens:         getEnvInt("OPENAI_MAX_TOKENS", 4000),
			Temperature:       getEnvFloat("OPENAI_TEMPERATURE", 0.2),
			MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
			RequestTimeout:    time.Duration(getEnvInt("OPENAI_REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
			RequestsPerSecond: getEnvFloat("OPENAI_REQUESTS_PER_SECOND", 0),
		},

		QualityThreshold: getEnvFloat("QUALITY_THRESHOLD", 0.75),
		MaxTestCases:     getEnvInt("MAX_TEST_CASES", 12),

		DailyCostLimitUSD:   getEnvFloat("DAILY_COST_LIMIT_USD", 50.0),
		MonthlyCostLimitUSD: getEnvFloat("MONTHLY_COST_LIMIT_USD", 1000.0),

		RedisURL:    getEnv("REDIS_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("OPENAI_MODEL must not be empty")
	}
	if c.QualityThreshold < 0 || c.QualityThreshold > 1 {
		return fmt.Errorf("QUALITY_THRESHOLD must be in [0,1], got %f", c.QualityThreshold)
	}
	if c.OpenAI.MaxRetries < 0 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
