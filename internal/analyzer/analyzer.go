// Package analyzer relays conversations to an OpenAI-compatible
// chat-completions service.
package analyzer

import (
	"context"

	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
)

// Analyzer sends a conversation to the model service. Each call makes exactly
// one upstream request and nothing is retried.
type Analyzer interface {
	// Complete returns the model's full answer.
	Complete(ctx context.Context, messages []models.Message, opts ...Option) (string, error)

	// Stream returns a channel of events for one streaming generation.
	// Content events arrive in upstream order and are followed by exactly one
	// terminal event (Done or Err) before the channel is closed. If ctx is
	// cancelled the upstream stream is abandoned and the channel is closed
	// without a terminal event.
	Stream(ctx context.Context, messages []models.Message, opts ...Option) <-chan StreamEvent
}

type StreamEvent struct {
	Content string
	Done    bool
	Err     error
}

// Terminal reports whether e ends the stream.
func (e StreamEvent) Terminal() bool {
	return e.Done || e.Err != nil
}

type Option func(*Options)

type Options struct {
	MaxTokens   int64
	Temperature float64
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}
