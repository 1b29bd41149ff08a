// Package response parses Ollama API payloads into typed results. Only the
// fields the pipeline consumes are modeled; everything else in the loosely
// shaped server responses is ignored at the boundary.
package response

import (
	"encoding/json"
	"fmt"

	"github.com/duetbot/duet/core/protocol"
)

// ChatResponse represents a non-streaming completion from the Ollama
// /api/chat endpoint.
type ChatResponse struct {
	Model      string           `json:"model"`
	CreatedAt  string           `json:"created_at,omitempty"`
	Message    protocol.Message `json:"message"`
	Done       bool             `json:"done"`
	DoneReason string           `json:"done_reason,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// ParseChat parses a chat response from JSON bytes. A payload carrying a
// server-side error field is returned as an error, not a response.
func ParseChat(body []byte) (*ChatResponse, error) {
	var response ChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("model returned error: %s", response.Error)
	}
	return &response, nil
}

// Text returns the generated completion text.
func (r *ChatResponse) Text() string {
	return r.Message.Content
}
