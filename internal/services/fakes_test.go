package services

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/legal-assistant-api/internal/analyzer"
	"github.com/BerylCAtieno/legal-assistant-api/internal/extractor"
	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	answer   string
	err      error
	chunks   []string
	calls    int
	messages []models.Message
	options  analyzer.Options
}

func (f *fakeAnalyzer) record(messages []models.Message, opts []analyzer.Option) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.messages = messages
	f.options = analyzer.Options{}
	for _, opt := range opts {
		opt(&f.options)
	}
}

func (f *fakeAnalyzer) Complete(_ context.Context, messages []models.Message, opts ...analyzer.Option) (string, error) {
	f.record(messages, opts)
	return f.answer, f.err
}

func (f *fakeAnalyzer) Stream(_ context.Context, messages []models.Message, opts ...analyzer.Option) <-chan analyzer.StreamEvent {
	f.record(messages, opts)
	events := make(chan analyzer.StreamEvent, len(f.chunks)+1)
	for _, c := range f.chunks {
		events <- analyzer.StreamEvent{Content: c}
	}
	if f.err != nil {
		events <- analyzer.StreamEvent{Err: f.err}
	} else {
		events <- analyzer.StreamEvent{Done: true}
	}
	close(events)
	return events
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
	seen  []string
}

func (f *fakeExtractor) Extract(path string, _ extractor.Format) (string, error) {
	f.calls++
	f.seen = append(f.seen, path)
	return f.text, f.err
}
