package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/legal-assistant-api/internal/config"
	"github.com/BerylCAtieno/legal-assistant-api/internal/handlers"
	"github.com/BerylCAtieno/legal-assistant-api/internal/metrics"
	"github.com/BerylCAtieno/legal-assistant-api/internal/middleware"
	"github.com/BerylCAtieno/legal-assistant-api/internal/services"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

func NewRouter(
	cfg *config.Config,
	chatService services.ChatService,
	docService services.DocumentService,
	logger *utils.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	chatHandler := handlers.NewChatHandler(chatService, logger)
	docHandler := handlers.NewDocumentHandler(docService, cfg.MaxFileSize, logger)
	healthHandler := handlers.NewHealthHandler(cfg, logger)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(cfg.APIPrefix).Subrouter()

	// Health check
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/status", healthHandler.Status).Methods(http.MethodGet, http.MethodOptions)

	// Chat endpoints
	api.HandleFunc("/chat", chatHandler.Chat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/chat/stream", chatHandler.ChatStream).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analysis-types", chatHandler.AnalysisTypes).Methods(http.MethodGet, http.MethodOptions)

	// Document endpoints
	api.HandleFunc("/upload", docHandler.UploadDocument).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/analyze-document", docHandler.AnalyzeDocument).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/supported-formats", docHandler.SupportedFormats).Methods(http.MethodGet, http.MethodOptions)

	return r
}
