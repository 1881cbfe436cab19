package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/legal-assistant-api/internal/models"
	"github.com/BerylCAtieno/legal-assistant-api/internal/prompts"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

func newChat(t *testing.T, llm *fakeAnalyzer) (ChatService, *prompts.Catalog) {
	t.Helper()
	catalog, err := prompts.Load()
	require.NoError(t, err)
	return NewChatService(catalog, llm, 2000, utils.NewDiscardLogger()), catalog
}

func TestChat_Success(t *testing.T) {
	llm := &fakeAnalyzer{answer: "Indemnification is a promise to cover losses."}
	svc, catalog := newChat(t, llm)

	resp, err := svc.Chat(context.Background(), &models.ChatRequest{
		Message:      "What does indemnification mean?",
		AnalysisType: "plain_english",
	})

	require.NoError(t, err)
	assert.Equal(t, llm.answer, resp.Response)
	assert.Equal(t, "plain_english", resp.AnalysisType)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, int64(2000), llm.options.MaxTokens)
	assert.Equal(t, catalog.ChatMessages("plain_english", nil, "What does indemnification mean?"), llm.messages)
}

func TestChat_DefaultsToGeneral(t *testing.T) {
	llm := &fakeAnalyzer{answer: "ok"}
	svc, catalog := newChat(t, llm)

	resp, err := svc.Chat(context.Background(), &models.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, prompts.General, resp.AnalysisType)
	assert.Equal(t, catalog.Resolve(prompts.General).SystemPrompt, llm.messages[0].Content)
}

func TestChat_UnknownTypeEchoedButPromptedAsGeneral(t *testing.T) {
	llm := &fakeAnalyzer{answer: "ok"}
	svc, catalog := newChat(t, llm)

	resp, err := svc.Chat(context.Background(), &models.ChatRequest{Message: "hello", AnalysisType: "astrology"})
	require.NoError(t, err)
	assert.Equal(t, "astrology", resp.AnalysisType)
	assert.Equal(t, catalog.ChatMessages(prompts.General, nil, "hello"), llm.messages)
}

func TestChat_TruncatesHistory(t *testing.T) {
	llm := &fakeAnalyzer{answer: "ok"}
	svc, _ := newChat(t, llm)

	history := make([]models.Message, 15)
	for i := range history {
		history[i] = models.Message{Role: "user", Content: string(rune('a' + i))}
	}

	_, err := svc.Chat(context.Background(), &models.ChatRequest{Message: "next", ConversationHistory: history})
	require.NoError(t, err)

	require.Len(t, llm.messages, 12)
	assert.Equal(t, history[5:], llm.messages[1:11])
}

func TestChat_MissingMessage(t *testing.T) {
	llm := &fakeAnalyzer{}
	svc, _ := newChat(t, llm)

	_, err := svc.Chat(context.Background(), &models.ChatRequest{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
	assert.Zero(t, llm.calls)
}

func TestChat_UpstreamFailure(t *testing.T) {
	svc, _ := newChat(t, &fakeAnalyzer{err: errors.New("401 invalid api key")})

	_, err := svc.Chat(context.Background(), &models.ChatRequest{Message: "hello"})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindUpstream, appErr.Kind)
	assert.Equal(t, "Failed to process chat request", appErr.Message)
	assert.NotContains(t, appErr.Message, "api key")
}

func TestStreamChat(t *testing.T) {
	llm := &fakeAnalyzer{chunks: []string{"a", "b"}}
	svc, _ := newChat(t, llm)

	events, err := svc.StreamChat(context.Background(), &models.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	var contents []string
	terminals := 0
	for ev := range events {
		if ev.Terminal() {
			terminals++
			continue
		}
		contents = append(contents, ev.Content)
	}
	assert.Equal(t, []string{"a", "b"}, contents)
	assert.Equal(t, 1, terminals)

	_, err = svc.StreamChat(context.Background(), &models.ChatRequest{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestAnalysisTypes(t *testing.T) {
	svc, catalog := newChat(t, &fakeAnalyzer{})
	assert.Equal(t, catalog.List(), svc.AnalysisTypes())
	assert.Len(t, svc.AnalysisTypes(), 6)
}
