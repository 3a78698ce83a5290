// Package config loads Cosmus configuration from the environment, optionally
// merged with a YAML config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LLM provider names.
const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderBedrock  = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// LLM service
	LLMProvider  string  `yaml:"llm_provider"`
	LLMModel     string  `yaml:"llm_model"`
	GeminiAPIKey string  `yaml:"gemini_api_key"`
	OpenAIAPIKey string  `yaml:"openai_api_key"`
	OllamaHost   string  `yaml:"ollama_host"`
	Temperature  float64 `yaml:"temperature"`
	TopP         float64 `yaml:"top_p"`

	// Explorer identity (may be empty; the persona then uses a generic address)
	UserName string `yaml:"user_name"`

	// Retry policy for remote calls
	RetryMaxAttempts  int           `yaml:"retry_max_attempts"`
	RetryInitialDelay time.Duration `yaml:"retry_initial_delay"`
	RetryMultiplier   float64       `yaml:"retry_multiplier"`

	// Media archive
	ArchiveURL string `yaml:"archive_url"`

	// History store (the localStorage analog)
	HistoryFile string `yaml:"history_file"`

	// API server
	ServerAddr string `yaml:"server_addr"`
	ServerURL  string `yaml:"server_url"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// Load reads configuration from environment variables. Defaults match the
// original service: gemini-2.5-flash at temperature 0.9 / topP 0.85, three
// request attempts starting at a two second backoff.
func Load() Config {
	return Config{
		LLMProvider:  getEnv("COSMUS_LLM_PROVIDER", ProviderGoogleAI),
		LLMModel:     getEnv("COSMUS_LLM_MODEL", "gemini-2.5-flash"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OllamaHost:   getEnv("OLLAMA_HOST", "http://localhost:11434"),
		Temperature:  getEnvFloat("COSMUS_TEMPERATURE", 0.9),
		TopP:         getEnvFloat("COSMUS_TOP_P", 0.85),

		UserName: getEnv("COSMUS_USER_NAME", ""),

		RetryMaxAttempts:  getEnvInt("COSMUS_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: getEnvDuration("COSMUS_RETRY_INITIAL_DELAY", 2*time.Second),
		RetryMultiplier:   getEnvFloat("COSMUS_RETRY_MULTIPLIER", 2.0),

		ArchiveURL: getEnv("COSMUS_ARCHIVE_URL", "https://images-api.nasa.gov"),

		HistoryFile: getEnv("COSMUS_HISTORY_FILE", defaultHistoryFile()),

		ServerAddr: getEnv("COSMUS_SERVER_ADDR", ":8787"),
		ServerURL:  getEnv("COSMUS_SERVER_URL", "http://localhost:8787"),

		LogFile:  getEnv("COSMUS_LOG_FILE", "/tmp/cosmus.log"),
		LogLevel: parseLogLevel(getEnv("COSMUS_LOG_LEVEL", "INFO")),
	}
}

// LoadWithFile reads the environment configuration and, if path is non-empty,
// overlays values set in a YAML config file.
func LoadWithFile(path string) (Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/cosmus-history.json"
	}
	return filepath.Join(home, ".cosmus", "history.json")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
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

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
