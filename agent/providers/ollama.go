// Package providers implements the HTTP providers backing the agent
// completion port. The only provider currently supported is Ollama.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/duetbot/duet/core/response"
)

const (
	chatEndpoint = "/api/chat"
	showEndpoint = "/api/show"
	tagsEndpoint = "/api/tags"
)

// probeTimeout bounds availability checks so a dead server fails fast.
// Completion calls are not bounded here; cancellation is the caller's
// decision via context.
const probeTimeout = 5 * time.Second

// Ollama talks to an Ollama server over its JSON REST API.
type Ollama struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewOllama creates a provider for the Ollama server at baseURL.
func NewOllama(baseURL string) *Ollama {
	return &Ollama{
		name:    "ollama",
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Name returns the provider name.
func (p *Ollama) Name() string {
	return p.name
}

// BaseURL returns the server base URL.
func (p *Ollama) BaseURL() string {
	return p.baseURL
}

// Chat sends a non-streaming chat completion request and returns the parsed
// response. The call blocks until the server answers or ctx is done.
func (p *Ollama) Chat(ctx context.Context, data *ChatData) (*response.ChatResponse, error) {
	body, err := p.marshalChat(data)
	if err != nil {
		return nil, err
	}

	raw, err := p.post(ctx, chatEndpoint, body)
	if err != nil {
		return nil, err
	}

	return response.ParseChat(raw)
}

// CheckModel reports whether the named model is available on the server.
// It asks for the model directly first; older servers without /api/show
// support fall back to scanning the full model listing.
func (p *Ollama) CheckModel(ctx context.Context, model string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"model": model})
	if err == nil {
		if _, err := p.post(ctx, showEndpoint, body); err == nil {
			return true
		}
	}

	names, err := p.ListModels(ctx)
	if err != nil {
		return false
	}
	for _, name := range names {
		if name == model {
			return true
		}
	}
	return false
}

// ListModels returns the identifiers of all models the server has pulled.
func (p *Ollama) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+tagsEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tags request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, serverError(raw))
	}

	tags, err := response.ParseTags(raw)
	if err != nil {
		return nil, err
	}
	return tags.Names(), nil
}

func (p *Ollama) marshalChat(data *ChatData) ([]byte, error) {
	payload := map[string]any{
		"model":    data.Model,
		"messages": data.Messages,
		"stream":   false,
	}
	if len(data.Options) > 0 {
		payload["options"] = data.Options
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}
	return body, nil
}

func (p *Ollama) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, serverError(raw))
	}

	return raw, nil
}

// serverError extracts the error field from an Ollama error payload, falling
// back to the raw body when the payload is not the expected shape.
func serverError(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(raw)
}
