// Package config holds the provider and model configuration consumed by the
// agent layer. Config values follow a defaults-then-merge discipline: each
// struct has a Default constructor and a Merge method that overlays non-zero
// fields from a source.
package config

import "os"

// Default connection settings for a locally hosted Ollama server.
const (
	DefaultProviderName = "ollama"
	DefaultBaseURL      = "http://localhost:11434"
	DefaultModelName    = "gemma3:4b"
	DefaultTemperature  = 0.7
	DefaultTopP         = 0.9
)

// Environment variables recognized by ApplyEnv.
const (
	EnvModel   = "OLLAMA_MODEL"
	EnvBaseURL = "OLLAMA_BASE_URL"
)

// ProviderConfig identifies the model host to talk to.
type ProviderConfig struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

// ModelConfig names the model and its sampling parameters.
type ModelConfig struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// Options returns the sampling parameters as a provider options map.
func (m *ModelConfig) Options() map[string]any {
	return map[string]any{
		"temperature": m.Temperature,
		"top_p":       m.TopP,
	}
}

// AgentConfig is the full configuration for one completion agent.
type AgentConfig struct {
	Provider *ProviderConfig `json:"provider,omitempty"`
	Model    *ModelConfig    `json:"model,omitempty"`
}

// DefaultAgentConfig returns an AgentConfig targeting a local Ollama server
// with the default model and sampling parameters.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Provider: &ProviderConfig{
			Name:    DefaultProviderName,
			BaseURL: DefaultBaseURL,
		},
		Model: &ModelConfig{
			Name:        DefaultModelName,
			Temperature: DefaultTemperature,
			TopP:        DefaultTopP,
		},
	}
}

// Merge applies non-zero values from source into c.
func (c *AgentConfig) Merge(source *AgentConfig) {
	if source == nil {
		return
	}

	if source.Provider != nil {
		if c.Provider == nil {
			c.Provider = &ProviderConfig{}
		}
		if source.Provider.Name != "" {
			c.Provider.Name = source.Provider.Name
		}
		if source.Provider.BaseURL != "" {
			c.Provider.BaseURL = source.Provider.BaseURL
		}
	}

	if source.Model != nil {
		if c.Model == nil {
			c.Model = &ModelConfig{}
		}
		if source.Model.Name != "" {
			c.Model.Name = source.Model.Name
		}
		if source.Model.Temperature != 0 {
			c.Model.Temperature = source.Model.Temperature
		}
		if source.Model.TopP != 0 {
			c.Model.TopP = source.Model.TopP
		}
	}
}

// ApplyEnv overlays recognized environment variables onto c. Unset variables
// leave the existing values untouched.
func (c *AgentConfig) ApplyEnv() {
	if name := os.Getenv(EnvModel); name != "" {
		if c.Model == nil {
			c.Model = &ModelConfig{}
		}
		c.Model.Name = name
	}
	if url := os.Getenv(EnvBaseURL); url != "" {
		if c.Provider == nil {
			c.Provider = &ProviderConfig{}
		}
		c.Provider.BaseURL = url
	}
}
