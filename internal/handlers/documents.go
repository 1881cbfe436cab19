package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/services"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

const (
	// multipartOverhead is the allowance for form boundaries and fields on
	// top of the file itself.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

type DocumentHandler struct {
	service     services.DocumentService
	maxFileSize int64
	logger      *utils.Logger
}

func NewDocumentHandler(service services.DocumentService, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	// Reject oversized requests before reading the body
	if r.ContentLength > h.maxFileSize+multipartOverhead {
		respondError(w, h.logger, services.FileTooLargeError(h.maxFileSize))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr), strings.Contains(err.Error(), "request body too large"):
			respondError(w, h.logger, services.FileTooLargeError(h.maxFileSize))
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			respondError(w, h.logger, utils.NewBadRequestError("No file provided"))
		default:
			respondError(w, h.logger, utils.NewBadRequestError("Invalid form data"))
		}
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Error("Failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file part with an empty filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			respondError(w, h.logger, utils.NewBadRequestError("No file selected"))
			return
		}
		respondError(w, h.logger, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"file_size", header.Size,
		"content_type", header.Header.Get("Content-Type"))

	req := &models.UploadRequest{
		File:         file,
		Filename:     header.Filename,
		Size:         header.Size,
		AnalysisType: r.FormValue("analysis_type"),
	}

	resp, err := h.service.UploadDocument(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.service.AnalyzeDocument(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

func (h *DocumentHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.service.SupportedFormats())
}
