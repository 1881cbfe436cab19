package models

import (
	"io"
	"time"
)

// UploadRequest is one uploaded file as received by the handler. File is only
// valid for the duration of the request.
type UploadRequest struct {
	File         io.Reader
	Filename     string
	Size         int64
	AnalysisType string
}

type UploadResponse struct {
	Success      bool      `json:"success"`
	Filename     string    `json:"filename"`
	Text         string    `json:"text"`
	FileSize     int64     `json:"file_size"`
	AnalysisType string    `json:"analysis_type"`
	Timestamp    time.Time `json:"timestamp"`
}

type AnalyzeRequest struct {
	Text         string `json:"text"`
	AnalysisType string `json:"analysis_type,omitempty"`
	Filename     string `json:"filename,omitempty"`
}

type AnalysisResponse struct {
	Success      bool      `json:"success"`
	Analysis     string    `json:"analysis"`
	Filename     string    `json:"filename"`
	AnalysisType string    `json:"analysis_type"`
	Timestamp    time.Time `json:"timestamp"`
}

type SupportedFormatsResponse struct {
	SupportedFormats []string          `json:"supported_formats"`
	MaxFileSizeMB    int64             `json:"max_file_size_mb"`
	Description      map[string]string `json:"description"`
}
