package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAnalyzerTimeout bounds the remote analysis call.
const DefaultAnalyzerTimeout = 8 * time.Second

// Config holds application configuration
type Config struct {
	LLMProvider string

	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string

	AnthropicAPIKey string
	ClaudeModel     string

	OpenAIAPIKey string
	OpenAIModel  string

	AnalyzerTimeout       time.Duration
	AnalyzerRemoteEnabled bool

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		LLMProvider:           strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", "gemini"))),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:          getEnv("GEMINI_API_URL", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", ""),
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:           getEnv("CLAUDE_MODEL", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", ""),
		AnalyzerTimeout:       getEnvAsDuration("ANALYZER_TIMEOUT", DefaultAnalyzerTimeout),
		AnalyzerRemoteEnabled: getEnvAsBool("ANALYZER_REMOTE_ENABLED", true),
		LogLevel:              getEnv("LOG_LEVEL", "warn"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
	}
}

// Credentials returns the API key, model and endpoint override configured
// for provider. Unknown providers yield empty values.
func (c *Config) Credentials(provider string) (apiKey, model, endpoint string) {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.GeminiAPIKey, c.GeminiModel, c.GeminiAPIURL
	case "gemini-sdk":
		return c.GeminiAPIKey, c.GeminiModel, ""
	case "claude":
		return c.AnthropicAPIKey, c.ClaudeModel, ""
	case "openai":
		return c.OpenAIAPIKey, c.OpenAIModel, ""
	default:
		return "", "", ""
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
