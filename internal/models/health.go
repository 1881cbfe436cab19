package models

import "time"

type HealthResponse struct {
	Status           string            `json:"status"`
	Timestamp        time.Time         `json:"timestamp"`
	Service          string            `json:"service"`
	Version          string            `json:"version"`
	OpenAIConfigured bool              `json:"openai_configured"`
	Endpoints        map[string]string `json:"endpoints"`
}

type StatusResponse struct {
	Service            string          `json:"service"`
	Status             string          `json:"status"`
	Version            string          `json:"version"`
	Environment        string          `json:"environment"`
	GoVersion          string          `json:"go_version"`
	Features           map[string]bool `json:"features"`
	SupportedFileTypes []string        `json:"supported_file_types"`
	MaxFileSizeMB      int64           `json:"max_file_size_mb"`
	Timestamp          time.Time       `json:"timestamp"`
}
