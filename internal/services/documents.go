package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/legal-assistant-api/internal/analyzer"
	"github.com/BerylCAtieno/legal-assistant-api/internal/extractor"
	"github.com/BerylCAtieno/legal-assistant-api/internal/metrics"
	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/prompts"
	"github.com/BerylCAtieno/legal-assistant-api/internal/storage"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResponse, error)
	SupportedFormats() *models.SupportedFormatsResponse
}

type DocumentConfig struct {
	MaxFileSize   int64
	MaxTextLength int
	MaxTokens     int64
	Temperature   float64
}

type documentService struct {
	catalog   *prompts.Catalog
	analyzer  analyzer.Analyzer
	extractor extractor.Extractor
	storage   storage.TempStorage
	cfg       DocumentConfig
	logger    *utils.Logger
}

func NewDocumentService(
	catalog *prompts.Catalog,
	llm analyzer.Analyzer,
	ext extractor.Extractor,
	store storage.TempStorage,
	cfg DocumentConfig,
	logger *utils.Logger,
) DocumentService {
	return &documentService{
		catalog:   catalog,
		analyzer:  llm,
		extractor: ext,
		storage:   store,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	format, err := s.validateUpload(req)
	if err != nil {
		return nil, err
	}

	filename := utils.SanitizeFilename(req.Filename)
	if filename == "" {
		filename = "document." + string(format)
	}
	analysisType := orGeneral(req.AnalysisType)

	tmp, err := s.storage.Save(ctx, filename, io.LimitReader(req.File, s.cfg.MaxFileSize+1))
	if err != nil {
		s.logger.Error("Failed to store upload", "error", err, "filename", filename)
		return nil, utils.NewInternalError("Failed to process file", err)
	}

	text, err := s.extract(tmp, format)
	if err != nil {
		if errors.Is(err, errOversized) {
			return nil, s.tooLarge()
		}
		s.logger.Error("Failed to extract text", "error", err, "filename", filename, "format", format)
		return nil, utils.NewExtractionError("Failed to extract text from file", err)
	}

	text = extractor.Truncate(text, s.cfg.MaxTextLength)

	s.logger.Info("Document processed",
		"filename", filename,
		"format", format,
		"file_size", tmp.Size,
		"text_length", len(text))

	return &models.UploadResponse{
		Success:      true,
		Filename:     filename,
		Text:         text,
		FileSize:     tmp.Size,
		AnalysisType: analysisType,
		Timestamp:    time.Now(),
	}, nil
}

var errOversized = errors.New("upload exceeds size limit")

// extract reads the stored upload and removes it before returning,
// whatever the outcome.
func (s *documentService) extract(tmp *storage.TempFile, format extractor.Format) (string, error) {
	defer func() {
		if err := tmp.Remove(); err != nil {
			s.logger.Error("Failed to remove temporary upload", "error", err, "path", tmp.Path)
		}
	}()

	// The declared size can understate the body; the limited copy catches it.
	if tmp.Size > s.cfg.MaxFileSize {
		return "", errOversized
	}

	text, err := s.extractor.Extract(tmp.Path, format)
	metrics.RecordExtraction(string(format), err)
	return text, err
}

func (s *documentService) validateUpload(req *models.UploadRequest) (extractor.Format, error) {
	if req.File == nil {
		return "", utils.NewBadRequestError("No file provided")
	}
	if req.Filename == "" {
		return "", utils.NewBadRequestError("No file selected")
	}

	format, ok := extractor.FormatOf(filepath.Base(strings.ReplaceAll(req.Filename, "\\", "/")))
	if !ok {
		s.logger.Warn("Unsupported file type", "filename", req.Filename)
		return "", utils.NewBadRequestError("File type not supported. Please upload PDF, DOC, DOCX, or TXT files.")
	}

	if req.Size > s.cfg.MaxFileSize {
		s.logger.Warn("Upload too large", "filename", req.Filename, "file_size", req.Size)
		return "", s.tooLarge()
	}
	return format, nil
}

func (s *documentService) tooLarge() error {
	return FileTooLargeError(s.cfg.MaxFileSize)
}

// FileTooLargeError is the validation error for an upload over maxFileSize bytes.
func FileTooLargeError(maxFileSize int64) *utils.AppError {
	return utils.NewBadRequestError(fmt.Sprintf("File too large. Maximum size is %dMB.", maxFileSize/(1024*1024)))
}

func (s *documentService) AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResponse, error) {
	if req.Text == "" {
		return nil, utils.NewBadRequestError("Document text is required")
	}

	filename := req.Filename
	if filename == "" {
		filename = "document"
	}
	analysisType := orGeneral(req.AnalysisType)

	messages := s.catalog.DocumentMessages(analysisType, req.Text)

	s.logger.Info("Starting document analysis", "filename", filename, "analysis_type", analysisType, "text_length", len(req.Text))
	analysis, err := s.analyzer.Complete(ctx, messages,
		analyzer.WithMaxTokens(s.cfg.MaxTokens),
		analyzer.WithTemperature(s.cfg.Temperature))
	if err != nil {
		s.logger.Error("Document analysis failed", "error", err, "filename", filename, "analysis_type", analysisType)
		return nil, utils.NewUpstreamError("Failed to analyze document", err)
	}

	return &models.AnalysisResponse{
		Success:      true,
		Analysis:     analysis,
		Filename:     filename,
		AnalysisType: analysisType,
		Timestamp:    time.Now(),
	}, nil
}

func (s *documentService) SupportedFormats() *models.SupportedFormatsResponse {
	resp := &models.SupportedFormatsResponse{
		MaxFileSizeMB: s.cfg.MaxFileSize / (1024 * 1024),
		Description:   make(map[string]string, len(extractor.Formats)),
	}
	for _, f := range extractor.Formats {
		resp.SupportedFormats = append(resp.SupportedFormats, string(f))
		resp.Description[string(f)] = f.Description()
	}
	return resp
}

func orGeneral(analysisType string) string {
	if analysisType == "" {
		return prompts.General
	}
	return analysisType
}
