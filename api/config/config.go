package config

import (
	iconfig "github.com/JohannesStutz/llm-evaluator/shared/config"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL string
}

type LLMConfig struct {
	// URL is the OpenAI-compatible API base. Empty means the stub gateway
	// serves canned responses instead of a real backend.
	URL         string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           iconfig.GetEnvWithFallback("LLMEVAL_SERVER_HOST", "HOST", "0.0.0.0"),
			Port:           iconfig.GetEnvIntWithFallback("LLMEVAL_SERVER_PORT", "PORT", 8000),
			AllowedOrigins: iconfig.GetEnvSlice("LLMEVAL_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL: iconfig.GetEnvWithFallback("LLMEVAL_POSTGRES_URL", "DATABASE_URL", "postgres://localhost:5432/llm_evaluator?sslmode=disable"),
		},
		LLM: LLMConfig{
			URL:         iconfig.GetEnvWithFallback("LLMEVAL_LLM_URL", "LLM_URL", ""),
			APIKey:      iconfig.GetEnvWithFallback("LLMEVAL_LLM_API_KEY", "LLM_API_KEY", ""),
			MaxTokens:   iconfig.GetEnvInt("LLMEVAL_LLM_MAX_TOKENS", 2048),
			Temperature: iconfig.GetEnvFloat("LLMEVAL_LLM_TEMPERATURE", 0.7),
		},
	}
}

// IsLLMConfigured reports whether a real generation backend is configured.
func (c *Config) IsLLMConfigured() bool {
	return c.LLM.URL != ""
}
