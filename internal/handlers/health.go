package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/BerylCAtieno/legal-assistant-api/internal/config"
	"github.com/BerylCAtieno/legal-assistant-api/internal/extractor"
	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

const (
	ServiceName = "Legal AI Assistant Backend"
	Version     = "1.0.0"
)

// HealthHandler reports liveness and configuration. It never calls the
// model service.
type HealthHandler struct {
	cfg    *config.Config
	logger *utils.Logger
}

func NewHealthHandler(cfg *config.Config, logger *utils.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, logger: logger}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	prefix := h.cfg.APIPrefix
	respondJSON(w, h.logger, http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Timestamp:        time.Now(),
		Service:          ServiceName,
		Version:          Version,
		OpenAIConfigured: h.cfg.OpenAIConfigured(),
		Endpoints: map[string]string{
			"chat":              prefix + "/chat",
			"chat_stream":       prefix + "/chat/stream",
			"file_upload":       prefix + "/upload",
			"document_analysis": prefix + "/analyze-document",
			"analysis_types":    prefix + "/analysis-types",
			"supported_formats": prefix + "/supported-formats",
		},
	})
}

func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	fileTypes := make([]string, 0, len(extractor.Formats))
	for _, f := range extractor.Formats {
		fileTypes = append(fileTypes, string(f))
	}

	respondJSON(w, h.logger, http.StatusOK, models.StatusResponse{
		Service:     ServiceName,
		Status:      "running",
		Version:     Version,
		Environment: h.cfg.Environment,
		GoVersion:   runtime.Version(),
		Features: map[string]bool{
			"chat":                    true,
			"file_upload":             true,
			"document_analysis":       true,
			"streaming_chat":          true,
			"multiple_analysis_types": true,
		},
		SupportedFileTypes: fileTypes,
		MaxFileSizeMB:      h.cfg.MaxFileSizeMB(),
		Timestamp:          time.Now(),
	})
}
