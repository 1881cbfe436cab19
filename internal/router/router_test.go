package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/legal-assistant-api/internal/analyzer"
	"github.com/BerylCAtieno/legal-assistant-api/internal/config"
	"github.com/BerylCAtieno/legal-assistant-api/internal/extractor"
	"github.com/BerylCAtieno/legal-assistant-api/internal/prompts"
	"github.com/BerylCAtieno/legal-assistant-api/internal/services"
	"github.com/BerylCAtieno/legal-assistant-api/internal/storage"
	"github.com/BerylCAtieno/legal-assistant-api/internal/utils"
)

const indemnification = "Indemnification means one party agrees to cover the other's losses."

// fakeModelService answers chat-completions calls in the OpenAI wire format.
func fakeModelService(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Stream bool `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if !req.Stream {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4",
				"choices": []map[string]any{{
					"index": 0, "finish_reason": "stop",
					"message": map[string]string{"role": "assistant", "content": indemnification},
				}},
			})
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Indemni", "fication"} {
			b, _ := json.Marshal(map[string]any{
				"id": "chatcmpl-1", "object": "chat.completion.chunk", "created": 1, "model": "gpt-4",
				"choices": []map[string]any{{"index": 0, "delta": map[string]string{"content": part}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", b)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	model := fakeModelService(t)
	uploads := t.TempDir()

	cfg := &config.Config{
		APIPrefix:         "/api",
		CORSAllowedOrigin: "*",
		Environment:       "test",
		OpenAIAPIKey:      "sk-test",
		MaxFileSize:       1 << 20,
		MaxTextLength:     10000,
		ChatMaxTokens:     2000,
		DocumentMaxTokens: 3000,
	}
	logger := utils.NewDiscardLogger()

	catalog, err := prompts.Load()
	require.NoError(t, err)
	store, err := storage.NewLocalTempStorage(uploads)
	require.NoError(t, err)

	llm := analyzer.NewOpenAIAnalyzer(analyzer.Config{
		APIKey: cfg.OpenAIAPIKey, BaseURL: model.URL, Model: "gpt-4",
		Timeout: 5 * time.Second, MaxTokens: 2000, Temperature: 0.7, BufferSize: 1,
	}, logger)

	chat := services.NewChatService(catalog, llm, cfg.ChatMaxTokens, logger)
	docs := services.NewDocumentService(catalog, llm, extractor.New(), store, services.DocumentConfig{
		MaxFileSize: cfg.MaxFileSize, MaxTextLength: cfg.MaxTextLength, MaxTokens: cfg.DocumentMaxTokens,
		Temperature: 0.7,
	}, logger)

	server := httptest.NewServer(NewRouter(cfg, chat, docs, logger))
	t.Cleanup(server.Close)
	return server, uploads
}

func TestChat_PlainEnglish(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/chat", "application/json",
		strings.NewReader(`{"message": "What does indemnification mean?", "analysis_type": "plain_english"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, indemnification, body["response"])
	assert.Equal(t, "plain_english", body["analysis_type"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestChatStream_EndToEnd(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/chat/stream", "application/json", strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t,
		"data: {\"content\":\"Indemni\"}\n\n"+
			"data: {\"content\":\"fication\"}\n\n"+
			"data: {\"done\":true}\n\n",
		string(data))
}

func TestUpload_EndToEnd(t *testing.T) {
	server, uploads := newTestServer(t)

	post := func(filename, content string) (*http.Response, map[string]any) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write([]byte(content))
		require.NoError(t, mw.WriteField("analysis_type", "risk_analysis"))
		require.NoError(t, mw.Close())

		resp, err := http.Post(server.URL+"/api/upload", mw.FormDataContentType(), &buf)
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp, body
	}

	resp, body := post("lease.txt", "Tenant shall pay rent.")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tenant shall pay rent.", body["text"])
	assert.Equal(t, "risk_analysis", body["analysis_type"])

	resp, body = post("setup.exe", "MZ")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File type not supported. Please upload PDF, DOC, DOCX, or TXT files.", body["error"])

	resp, body = post("broken.docx", "not a zip")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to extract text from file", body["error"])

	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/status", http.StatusOK},
		{http.MethodGet, "/api/analysis-types", http.StatusOK},
		{http.MethodGet, "/api/supported-formats", http.StatusOK},
		{http.MethodOptions, "/api/chat", http.StatusNoContent},
		{http.MethodOptions, "/api/upload", http.StatusNoContent},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if strings.HasPrefix(tt.path, "/api/") && tt.status < 400 {
				assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestAnalysisTypes_EndToEnd(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/analysis-types")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		AnalysisTypes []struct {
			ID string `json:"id"`
		} `json:"analysis_types"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	var ids []string
	for _, at := range body.AnalysisTypes {
		ids = append(ids, at.ID)
	}
	assert.Equal(t, []string{"plain_english", "risk_analysis", "negotiation", "deal_advisor", "dispute_resolution", "document_generator"}, ids)
}
