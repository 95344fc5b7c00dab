package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL        string
	AnthropicKey string
	AVKey        string
	NewsKey      string
	Port         string
	LLMModel     string
	LLMTimeout   time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	anthropicKey := os.Getenv("ANTHROPIC_KEY")
	if anthropicKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_KEY environment variable is required")
	}

	avKey := os.Getenv("AV_KEY")
	if avKey == "" {
		return nil, fmt.Errorf("AV_KEY environment variable is required")
	}

	newsKey := os.Getenv("NEWS_KEY")
	if newsKey == "" {
		return nil, fmt.Errorf("NEWS_KEY environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	llmTimeout := 30 * time.Second
	if timeoutStr := os.Getenv("LLM_TIMEOUT"); timeoutStr != "" {
		parsed, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", timeoutStr, err)
		}
		llmTimeout = parsed
	}

	return &Config{
		PGURL:        pgURL,
		AnthropicKey: anthropicKey,
		AVKey:        avKey,
		NewsKey:      newsKey,
		Port:         port,
		LLMModel:     os.Getenv("LLM_MODEL"),
		LLMTimeout:   llmTimeout,
	}, nil
}
