package chatbot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duetbot/duet/chatbot"
)

func TestDefaultConfig(t *testing.T) {
	cfg := chatbot.DefaultConfig()

	if cfg.MaxTurns != 10 {
		t.Errorf("got max turns %d, want 10", cfg.MaxTurns)
	}
	if cfg.SystemPrompt == "" {
		t.Error("default system prompt is empty")
	}
	if !strings.Contains(cfg.ReformatPrompt, "Rewrite") {
		t.Errorf("unexpected reformat prompt: %q", cfg.ReformatPrompt)
	}
	if cfg.Agent.Model == nil || cfg.Agent.Model.Name == "" {
		t.Error("default config names no model")
	}
	if cfg.Trace.Enabled() {
		t.Error("tracing enabled without credentials")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := chatbot.DefaultConfig()
	cfg.Merge(&chatbot.Config{
		SystemPrompt: "You are a pirate.",
		MaxTurns:     3,
		Trace:        chatbot.TraceConfig{Endpoint: "https://traces.example.com", APIKey: "k"},
	})

	if cfg.SystemPrompt != "You are a pirate." {
		t.Errorf("got system prompt %q", cfg.SystemPrompt)
	}
	if cfg.MaxTurns != 3 {
		t.Errorf("got max turns %d, want 3", cfg.MaxTurns)
	}
	if !cfg.Trace.Enabled() {
		t.Error("trace should be enabled after merge")
	}
	// Untouched fields keep defaults.
	if cfg.ReformatPrompt == "" {
		t.Error("merge cleared the reformat prompt")
	}
	if cfg.Trace.Project != "duet" {
		t.Errorf("got trace project %q, want default", cfg.Trace.Project)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duet.json")
	content := `{
		"agent": {"model": {"name": "qwen3:8b"}},
		"max_turns": 5
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := chatbot.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Agent.Model.Name != "qwen3:8b" {
		t.Errorf("got model %q, want %q", cfg.Agent.Model.Name, "qwen3:8b")
	}
	if cfg.MaxTurns != 5 {
		t.Errorf("got max turns %d, want 5", cfg.MaxTurns)
	}
	// Defaults fill in everything the file omits.
	if cfg.Agent.Provider.BaseURL != "http://localhost:11434" {
		t.Errorf("got base URL %q, want default", cfg.Agent.Provider.BaseURL)
	}
	if cfg.SystemPrompt == "" {
		t.Error("system prompt not defaulted")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := chatbot.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)

	if _, err := chatbot.LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed file, got nil")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("OLLAMA_MODEL", "llama3.2:3b")
	t.Setenv(chatbot.EnvSystemPrompt, "Answer in haiku.")
	t.Setenv(chatbot.EnvMaxTurns, "4")
	t.Setenv(chatbot.EnvTraceEndpoint, "https://traces.example.com")
	t.Setenv(chatbot.EnvTraceAPIKey, "secret")
	t.Setenv(chatbot.EnvTraceProject, "duet-prod")

	cfg := chatbot.DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Agent.Model.Name != "llama3.2:3b" {
		t.Errorf("got model %q, want env override", cfg.Agent.Model.Name)
	}
	if cfg.SystemPrompt != "Answer in haiku." {
		t.Errorf("got system prompt %q, want env override", cfg.SystemPrompt)
	}
	if cfg.MaxTurns != 4 {
		t.Errorf("got max turns %d, want 4", cfg.MaxTurns)
	}
	if !cfg.Trace.Enabled() {
		t.Error("trace should be enabled from env")
	}
	if cfg.Trace.Project != "duet-prod" {
		t.Errorf("got trace project %q, want %q", cfg.Trace.Project, "duet-prod")
	}
}

func TestConfig_ApplyEnv_BadMaxTurns(t *testing.T) {
	t.Setenv(chatbot.EnvMaxTurns, "not-a-number")

	cfg := chatbot.DefaultConfig()
	cfg.ApplyEnv()

	if cfg.MaxTurns != 10 {
		t.Errorf("got max turns %d, want default 10", cfg.MaxTurns)
	}
}
