package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	LogLevel          string
	Environment       string
	APIPrefix         string
	CORSAllowedOrigin string

	// OpenAI-compatible model service
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	ChatMaxTokens     int64
	DocumentMaxTokens int64
	Temperature       float64
	DocumentTemp      float64
	StreamBufferSize  int

	// Upload limits
	UploadDir     string
	MaxFileSize   int64
	MaxTextLength int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("APP_ENV", "development"),
		APIPrefix:         getEnv("API_PREFIX", "/api"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4"),
		UploadDir:         getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "legal-assistant-uploads")),
	}

	var err error
	if cfg.OpenAITimeout, err = getEnvDuration("OPENAI_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}
	if cfg.ChatMaxTokens, err = getEnvInt64("CHAT_MAX_TOKENS", 2000); err != nil {
		return nil, err
	}
	if cfg.DocumentMaxTokens, err = getEnvInt64("DOCUMENT_MAX_TOKENS", 3000); err != nil {
		return nil, err
	}
	if cfg.Temperature, err = getEnvFloat("MODEL_TEMPERATURE", 0.7); err != nil {
		return nil, err
	}
	if cfg.DocumentTemp, err = getEnvFloat("DOCUMENT_TEMPERATURE", cfg.Temperature); err != nil {
		return nil, err
	}
	bufferSize, err := getEnvInt64("STREAM_BUFFER_SIZE", 1)
	if err != nil {
		return nil, err
	}
	cfg.StreamBufferSize = int(bufferSize)
	if cfg.MaxFileSize, err = getEnvInt64("MAX_FILE_SIZE", 16*1024*1024); err != nil {
		return nil, err
	}
	maxText, err := getEnvInt64("MAX_TEXT_LENGTH", 10000)
	if err != nil {
		return nil, err
	}
	cfg.MaxTextLength = int(maxText)

	if cfg.ReadTimeout, err = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDuration("SERVER_WRITE_TIMEOUT", cfg.OpenAITimeout+30*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.MaxTextLength <= 0 {
		return nil, fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", cfg.MaxTextLength)
	}
	// A timed-out model call must still be able to write its error response.
	if cfg.WriteTimeout <= cfg.OpenAITimeout {
		return nil, fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) must exceed OPENAI_TIMEOUT (%s)", cfg.WriteTimeout, cfg.OpenAITimeout)
	}
	if cfg.StreamBufferSize < 0 {
		return nil, fmt.Errorf("STREAM_BUFFER_SIZE must not be negative, got %d", cfg.StreamBufferSize)
	}

	return cfg, nil
}

// OpenAIConfigured reports whether a model-service credential was provided.
func (c *Config) OpenAIConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// MaxFileSizeMB is the upload ceiling in whole mebibytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSize / (1024 * 1024)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
