package chatbot

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/duetbot/duet/core/config"
)

const defaultMaxTurns = 10

// defaultSystemPrompt conditions the draft pass on conversation history.
const defaultSystemPrompt = `You are a helpful AI assistant.
You should be friendly, informative, and try to help the user with their questions.
Keep your responses simple and direct but complete.`

// defaultReformatPrompt drives the second, history-free pass over the draft.
const defaultReformatPrompt = "Rewrite the following assistant draft into a concise, helpful answer. " +
	"Use short paragraphs and bullet points when listing steps or options."

// Stage names resolvable through the Agents config section. Registering an
// agent under one of these names routes that pipeline stage to it; stages
// without an override use the default agent.
const (
	StageDraft  = "draft"
	StageFormat = "format"
)

// Environment variables recognized by ApplyEnv, in addition to the agent
// variables handled by config.AgentConfig.
const (
	EnvSystemPrompt  = "DUET_SYSTEM_PROMPT"
	EnvMaxTurns      = "DUET_MAX_TURNS"
	EnvTraceEndpoint = "TRACE_ENDPOINT"
	EnvTraceAPIKey   = "TRACE_API_KEY"
	EnvTraceProject  = "TRACE_PROJECT"
)

// TraceConfig parameterizes the remote trace observer. Tracing is enabled
// only when both endpoint and API key are present.
type TraceConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Project  string `json:"project,omitempty"`
}

// Enabled reports whether the configuration is complete enough to trace.
func (t *TraceConfig) Enabled() bool {
	return t.Endpoint != "" && t.APIKey != ""
}

// Config holds initialization parameters for the chatbot and its subsystems.
type Config struct {
	Agent          config.AgentConfig            `json:"agent"`
	Agents         map[string]config.AgentConfig `json:"agents,omitempty"`
	SystemPrompt   string                        `json:"system_prompt,omitempty"`
	ReformatPrompt string                        `json:"reformat_prompt,omitempty"`
	MaxTurns       int                           `json:"max_turns,omitempty"`
	Trace          TraceConfig                   `json:"trace"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:          config.DefaultAgentConfig(),
		SystemPrompt:   defaultSystemPrompt,
		ReformatPrompt: defaultReformatPrompt,
		MaxTurns:       defaultMaxTurns,
		Trace:          TraceConfig{Project: "duet"},
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)

	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.ReformatPrompt != "" {
		c.ReformatPrompt = source.ReformatPrompt
	}
	if source.MaxTurns > 0 {
		c.MaxTurns = source.MaxTurns
	}
	if source.Trace.Endpoint != "" {
		c.Trace.Endpoint = source.Trace.Endpoint
	}
	if source.Trace.APIKey != "" {
		c.Trace.APIKey = source.Trace.APIKey
	}
	if source.Trace.Project != "" {
		c.Trace.Project = source.Trace.Project
	}
	if len(source.Agents) > 0 {
		c.Agents = source.Agents
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// ApplyEnv overlays recognized environment variables onto c. Unset variables
// leave the existing values untouched.
func (c *Config) ApplyEnv() {
	c.Agent.ApplyEnv()

	if prompt := os.Getenv(EnvSystemPrompt); prompt != "" {
		c.SystemPrompt = prompt
	}
	if raw := os.Getenv(EnvMaxTurns); raw != "" {
		if turns, err := strconv.Atoi(raw); err == nil && turns > 0 {
			c.MaxTurns = turns
		}
	}
	if endpoint := os.Getenv(EnvTraceEndpoint); endpoint != "" {
		c.Trace.Endpoint = endpoint
	}
	if key := os.Getenv(EnvTraceAPIKey); key != "" {
		c.Trace.APIKey = key
	}
	if project := os.Getenv(EnvTraceProject); project != "" {
		c.Trace.Project = project
	}
}
