package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/services"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

// StreamErrorMessage is the client-facing text of a failed stream.
const StreamErrorMessage = "Failed to generate response"

type ChatHandler struct {
	service services.ChatService
	logger  *utils.Logger
}

func NewChatHandler(service services.ChatService, logger *utils.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.service.Chat(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

// ChatStream relays a generation as server-sent events. Validation failures
// are reported with a status code; once the stream has started, failures
// arrive as a terminal error event.
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, err := h.service.StreamChat(ctx, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	rc := http.NewResponseController(w)
	// A generation can outlive the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn("Failed to clear write deadline", "error", err)
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	if header.Get("Access-Control-Allow-Origin") == "" {
		header.Set("Access-Control-Allow-Origin", "*")
	}
	w.WriteHeader(http.StatusOK)

	for ev := range events {
		chunk := models.StreamChunk{Content: ev.Content}
		switch {
		case ev.Err != nil:
			h.logger.Error("Chat stream failed", "error", ev.Err, "analysis_type", req.AnalysisType)
			chunk = models.StreamChunk{Error: StreamErrorMessage}
		case ev.Done:
			chunk = models.StreamChunk{Done: true}
		}

		if err := writeEvent(w, rc, chunk); err != nil {
			h.logger.Info("Client disconnected from chat stream", "error", err)
			return
		}
		if ev.Terminal() {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, chunk models.StreamChunk) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return rc.Flush()
}

func (h *ChatHandler) AnalysisTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, models.AnalysisTypesResponse{
		AnalysisTypes: h.service.AnalysisTypes(),
	})
}
