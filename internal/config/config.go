// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/albrtbc/mv-thread-digest/internal/fetch"
)

// Config holds all application configuration.
type Config struct {
	// forum
	ForumBaseURL    string
	ForumTimeoutSec int
	ForumUserAgent  string

	// fetch
	FetchWindowSize  int
	FetchWindowDelay int // milliseconds between concurrency windows
	MaxPageSpan      int

	// summarization
	BatchCharBudget int
	SummaryLanguage string

	// llm
	LLMProvider    string // "openai" or "gemini"
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeoutSec  int
	GeminiAPIKey   string
	GeminiModel    string

	// server
	HTTPPort int

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ForumBaseURL:     getEnv("FORUM_BASE_URL", "https://www.mediavida.com"),
		ForumTimeoutSec:  getEnvInt("FORUM_TIMEOUT_SECONDS", 20),
		ForumUserAgent:   getEnv("FORUM_USER_AGENT", "mv-thread-digest/1.0"),
		FetchWindowSize:  getEnvInt("FETCH_WINDOW_SIZE", 4),
		FetchWindowDelay: getEnvInt("FETCH_WINDOW_DELAY_MS", 200),
		MaxPageSpan:      getEnvInt("MAX_PAGE_SPAN", fetch.MaxPageSpan),
		BatchCharBudget:  getEnvInt("BATCH_CHAR_BUDGET", 24000),
		SummaryLanguage:  getEnv("SUMMARY_LANGUAGE", "es"),
		LLMProvider:      getEnv("LLM_PROVIDER", "openai"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMMaxTokens:     getEnvInt("LLM_MAX_TOKENS", 2048),
		LLMTimeoutSec:    getEnvInt("LLM_TIMEOUT_SECONDS", 90),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		HTTPPort:         getEnvInt("HTTP_PORT", 3100),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
	}

	cfg.LLMTemperature = getEnvFloat("LLM_TEMPERATURE", 0.2)

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
