package models

import "time"

// Message roles understood by the model service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string    `json:"message"`
	AnalysisType        string    `json:"analysis_type,omitempty"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

type ChatResponse struct {
	Response     string    `json:"response"`
	Timestamp    time.Time `json:"timestamp"`
	AnalysisType string    `json:"analysis_type"`
}

// StreamChunk is the payload of one server-sent event on /chat/stream.
// Exactly one of the fields is set per event.
type StreamChunk struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}

type AnalysisTypeInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type AnalysisTypesResponse struct {
	AnalysisTypes []AnalysisTypeInfo `json:"analysis_types"`
}
