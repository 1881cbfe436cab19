package services

import (
	"context"
	"time"

	"github.com/BerylCAtieno/legal-assistant-api/internal/analyzer"
	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/prompts"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

type ChatService interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	StreamChat(ctx context.Context, req *models.ChatRequest) (<-chan analyzer.StreamEvent, error)
	AnalysisTypes() []models.AnalysisTypeInfo
}

type chatService struct {
	catalog   *prompts.Catalog
	analyzer  analyzer.Analyzer
	maxTokens int64
	logger    *utils.Logger
}

func NewChatService(catalog *prompts.Catalog, llm analyzer.Analyzer, maxTokens int64, logger *utils.Logger) ChatService {
	return &chatService{
		catalog:   catalog,
		analyzer:  llm,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (s *chatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	messages, analysisType, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	answer, err := s.analyzer.Complete(ctx, messages, analyzer.WithMaxTokens(s.maxTokens))
	if err != nil {
		s.logger.Error("Chat completion failed", "error", err, "analysis_type", analysisType)
		return nil, utils.NewUpstreamError("Failed to process chat request", err)
	}

	return &models.ChatResponse{
		Response:     answer,
		Timestamp:    time.Now(),
		AnalysisType: analysisType,
	}, nil
}

func (s *chatService) StreamChat(ctx context.Context, req *models.ChatRequest) (<-chan analyzer.StreamEvent, error) {
	messages, analysisType, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting chat stream", "analysis_type", analysisType, "messages", len(messages))
	return s.analyzer.Stream(ctx, messages, analyzer.WithMaxTokens(s.maxTokens)), nil
}

func (s *chatService) AnalysisTypes() []models.AnalysisTypeInfo {
	return s.catalog.List()
}

func (s *chatService) prepare(req *models.ChatRequest) ([]models.Message, string, error) {
	if req.Message == "" {
		return nil, "", utils.NewBadRequestError("Message is required")
	}

	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = prompts.General
	}
	if !s.catalog.Known(analysisType) {
		s.logger.Warn("Unknown analysis type, using general", "analysis_type", analysisType)
	}

	return s.catalog.ChatMessages(analysisType, req.ConversationHistory, req.Message), analysisType, nil
}
