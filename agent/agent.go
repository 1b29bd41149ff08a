// Package agent provides the completion capability consumed by the chat
// pipeline: given an ordered message sequence, produce generated text. The
// pipeline depends only on the Agent interface; the concrete implementation
// calls an Ollama server through the providers package.
package agent

import (
	"context"
	"fmt"
	"maps"

	"github.com/duetbot/duet/agent/providers"
	"github.com/duetbot/duet/core/config"
	"github.com/duetbot/duet/core/protocol"
	"github.com/duetbot/duet/core/response"
	"github.com/google/uuid"
)

// Agent turns a message sequence into a chat completion. Implementations
// must be safe for concurrent use.
type Agent interface {
	// ID returns the unique agent identifier.
	ID() string
	// Model returns the model name this agent completes with.
	Model() string
	// Chat produces a completion for the given messages. Per-call options
	// overlay the agent's configured sampling parameters.
	Chat(ctx context.Context, messages []protocol.Message, opts ...map[string]any) (*response.ChatResponse, error)
}

type chatAgent struct {
	id       string
	provider *providers.Ollama
	model    string
	options  map[string]any
}

// New creates an Agent from configuration. The provider section defaults to
// a local Ollama server; the model section must name a model.
func New(cfg *config.AgentConfig) (Agent, error) {
	if cfg == nil || cfg.Model == nil || cfg.Model.Name == "" {
		return nil, ErrMissingModel
	}

	providerCfg := cfg.Provider
	if providerCfg == nil {
		defaults := config.DefaultAgentConfig()
		providerCfg = defaults.Provider
	}
	if providerCfg.Name != "" && providerCfg.Name != "ollama" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerCfg.Name)
	}

	baseURL := providerCfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	return &chatAgent{
		id:       uuid.Must(uuid.NewV7()).String(),
		provider: providers.NewOllama(baseURL),
		model:    cfg.Model.Name,
		options:  cfg.Model.Options(),
	}, nil
}

func (a *chatAgent) ID() string {
	return a.id
}

func (a *chatAgent) Model() string {
	return a.model
}

func (a *chatAgent) Chat(ctx context.Context, messages []protocol.Message, opts ...map[string]any) (*response.ChatResponse, error) {
	options := make(map[string]any, len(a.options))
	maps.Copy(options, a.options)
	for _, opt := range opts {
		maps.Copy(options, opt)
	}

	return a.provider.Chat(ctx, &providers.ChatData{
		Model:    a.model,
		Messages: messages,
		Options:  options,
	})
}
