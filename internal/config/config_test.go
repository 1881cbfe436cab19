package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MAX_FILE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "gpt-4", cfg.OpenAIModel)
	assert.Equal(t, int64(2000), cfg.ChatMaxTokens)
	assert.Equal(t, int64(3000), cfg.DocumentMaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, int64(16*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, int64(16), cfg.MaxFileSizeMB())
	assert.Equal(t, 10000, cfg.MaxTextLength)
	assert.Equal(t, 150*time.Second, cfg.WriteTimeout)
	assert.Greater(t, cfg.WriteTimeout, cfg.OpenAITimeout)
	assert.InDelta(t, 0.7, cfg.DocumentTemp, 1e-9)
	assert.False(t, cfg.OpenAIConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_TEXT_LENGTH", "500")
	t.Setenv("OPENAI_TIMEOUT", "5s")
	t.Setenv("MODEL_TEMPERATURE", "0.2")
	t.Setenv("DOCUMENT_TEMPERATURE", "0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.OpenAIConfigured())
	assert.Equal(t, 500, cfg.MaxTextLength)
	assert.Equal(t, 5*time.Second, cfg.OpenAITimeout)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.InDelta(t, 0.1, cfg.DocumentTemp, 1e-9)
	assert.Equal(t, 35*time.Second, cfg.WriteTimeout)
}

func TestLoad_WriteTimeoutMustExceedModelTimeout(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT", "120s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "120s")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_WRITE_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric size", key: "MAX_FILE_SIZE", value: "lots"},
		{name: "zero size", key: "MAX_FILE_SIZE", value: "0"},
		{name: "bad duration", key: "OPENAI_TIMEOUT", value: "soon"},
		{name: "bad float", key: "MODEL_TEMPERATURE", value: "warm"},
		{name: "bad document temperature", key: "DOCUMENT_TEMPERATURE", value: "hot"},
		{name: "negative buffer", key: "STREAM_BUFFER_SIZE", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
