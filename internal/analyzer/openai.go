package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/BerylCAtieno/legal-assistant-api/internal/metrics"
	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int64
	Temperature float64
	BufferSize  int
}

type openAIAnalyzer struct {
	client openai.Client
	cfg    Config
	logger *utils.Logger
}

func NewOpenAIAnalyzer(cfg Config, logger *utils.Logger) Analyzer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.BufferSize < 0 {
		cfg.BufferSize = 0
	}

	return &openAIAnalyzer{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
	}
}

func (a *openAIAnalyzer) params(messages []models.Message, opts []Option) openai.ChatCompletionNewParams {
	options := &Options{
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}
	for _, opt := range opts {
		opt(options)
	}

	params := openai.ChatCompletionNewParams{
		Model:       a.cfg.Model,
		Messages:    toParams(messages),
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(options.MaxTokens)
	}
	return params
}

func (a *openAIAnalyzer) Complete(ctx context.Context, messages []models.Message, opts ...Option) (string, error) {
	var reqOpts []option.RequestOption
	if a.cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(a.cfg.Timeout))
	}

	start := time.Now()
	resp, err := a.client.Chat.Completions.New(ctx, a.params(messages, opts), reqOpts...)
	metrics.ObserveUpstream(metrics.ModeComplete, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	a.logger.Debug("Chat completion finished",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

func (a *openAIAnalyzer) Stream(ctx context.Context, messages []models.Message, opts ...Option) <-chan StreamEvent {
	events := make(chan StreamEvent, a.cfg.BufferSize)
	params := a.params(messages, opts)

	go func() {
		defer close(events)

		start := time.Now()
		stream := a.client.Chat.Completions.NewStreaming(ctx, params)
		defer stream.Close()

		chunks := 0
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if !send(ctx, events, StreamEvent{Content: chunk.Choices[0].Delta.Content}) {
				a.logger.Info("Stream abandoned by client", "chunks", chunks)
				return
			}
			chunks++
			metrics.StreamChunks.Inc()
		}

		err := stream.Err()
		if ctx.Err() != nil {
			a.logger.Info("Stream abandoned by client", "chunks", chunks)
			return
		}
		metrics.ObserveUpstream(metrics.ModeStream, time.Since(start), err)

		if err != nil {
			send(ctx, events, StreamEvent{Err: fmt.Errorf("chat completion stream failed: %w", err)})
			return
		}
		send(ctx, events, StreamEvent{Done: true})
	}()

	return events
}

func send(ctx context.Context, events chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func toParams(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
