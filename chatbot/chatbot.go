// Package chatbot implements the session-scoped two-stage conversation
// pipeline: a history-aware draft pass decides what to say, and a separate
// history-free reformat pass decides how to phrase it. Only the final,
// user-facing answer is persisted to the session transcript.
//
// The chatbot initializes from configuration via New, creating all
// subsystems internally. Functional options allow test overrides of any
// subsystem.
//
//	bot, err := chatbot.New(&cfg)
//	reply, err := bot.Chat(ctx, "default", "What is a goroutine?")
package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duetbot/duet/agent"
	"github.com/duetbot/duet/core/protocol"
	"github.com/duetbot/duet/observability"
	"github.com/duetbot/duet/session"
)

// summaryItems is how many trailing messages Summary renders.
const summaryItems = 6

// noHistoryMessage is returned by Summary for an empty transcript.
const noHistoryMessage = "No conversation history yet."

// Option configures a Chatbot after config-driven initialization.
// Applied by New after cold start — overrides replace config-created defaults.
type Option func(*Chatbot)

// WithAgent overrides the config-created agent for both pipeline stages.
func WithAgent(a agent.Agent) Option {
	return func(b *Chatbot) {
		b.draft = a
		b.format = a
	}
}

// WithDraftAgent overrides the agent used by the draft stage only.
func WithDraftAgent(a agent.Agent) Option {
	return func(b *Chatbot) { b.draft = a }
}

// WithFormatAgent overrides the agent used by the reformat stage only.
func WithFormatAgent(a agent.Agent) Option {
	return func(b *Chatbot) { b.format = a }
}

// WithStore overrides the config-created session store.
func WithStore(s *session.Store) Option {
	return func(b *Chatbot) { b.store = s }
}

// WithRegistry overrides the config-created agent registry.
func WithRegistry(r *agent.Registry) Option {
	return func(b *Chatbot) { b.registry = r }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(b *Chatbot) { b.observer = o }
}

// Chatbot runs the two-stage conversation pipeline over a session store.
type Chatbot struct {
	draft          agent.Agent
	format         agent.Agent
	registry       *agent.Registry
	store          *session.Store
	observer       observability.Observer
	systemPrompt   string
	reformatPrompt string
	maxTurns       int
}

// New creates a Chatbot from configuration. The default agent serves both
// pipeline stages; registering agents named StageDraft or StageFormat in
// cfg.Agents routes the corresponding stage to a dedicated model. Functional
// options applied after initialization can override any subsystem for
// testing.
func New(cfg *Config, opts ...Option) (*Chatbot, error) {
	a, err := agent.New(&cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	reg := agent.NewRegistry()
	for name, agentCfg := range cfg.Agents {
		if err := reg.Register(name, agentCfg); err != nil {
			return nil, fmt.Errorf("failed to register agent %q: %w", name, err)
		}
	}

	b := &Chatbot{
		draft:          a,
		format:         a,
		registry:       reg,
		store:          session.NewStore(),
		observer:       observability.NewSlogObserver(slog.Default()),
		systemPrompt:   cfg.SystemPrompt,
		reformatPrompt: cfg.ReformatPrompt,
		maxTurns:       cfg.MaxTurns,
	}

	for _, stage := range []struct {
		name  string
		field *agent.Agent
	}{
		{StageDraft, &b.draft},
		{StageFormat, &b.format},
	} {
		if !reg.Has(stage.name) {
			continue
		}
		staged, err := reg.Get(stage.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s agent: %w", stage.name, err)
		}
		*stage.field = staged
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Registry returns the chatbot's agent registry.
func (b *Chatbot) Registry() *agent.Registry {
	return b.registry
}

// Chat runs one full pipeline turn for the given session: encode the input,
// generate a history-aware draft, reformat the draft without history, then
// append the user/assistant pair to the transcript atomically and return the
// final text.
//
// A failure at either model call returns an error and leaves the transcript
// exactly as it was — failed turns leave no trace, and retry is the caller's
// decision. Chat never panics on provider failures.
func (b *Chatbot) Chat(ctx context.Context, sessionID, rawInput string) (string, error) {
	userMsg := EncodeInput(rawInput)
	sess := b.store.Get(sessionID)

	b.emit(ctx, EventChatStart, observability.LevelVerbose, map[string]any{
		"session":      sessionID,
		"input_length": len(userMsg.Content),
	})

	draftResp, err := b.draft.Chat(ctx, b.buildDraftMessages(sess, userMsg))
	if err != nil {
		return "", b.fail(ctx, sessionID, "draft", err)
	}
	draftText := draftResp.Text()
	if draftText == "" {
		return "", b.fail(ctx, sessionID, "draft", ErrEmptyCompletion)
	}

	b.emit(ctx, EventDraftComplete, observability.LevelVerbose, map[string]any{
		"session":      sessionID,
		"draft_length": len(draftText),
	})

	finalResp, err := b.format.Chat(ctx, b.buildReformatMessages(draftText))
	if err != nil {
		return "", b.fail(ctx, sessionID, "reformat", err)
	}
	finalText := finalResp.Text()
	if finalText == "" {
		return "", b.fail(ctx, sessionID, "reformat", ErrEmptyCompletion)
	}

	b.emit(ctx, EventReformatComplete, observability.LevelVerbose, map[string]any{
		"session":      sessionID,
		"final_length": len(finalText),
	})

	sess.AddExchange(userMsg, protocol.NewMessage(protocol.RoleAssistant, finalText))

	b.emit(ctx, EventResponse, observability.LevelInfo, map[string]any{
		"session":         sessionID,
		"response_length": len(finalText),
		"transcript_size": sess.Len(),
	})

	return finalText, nil
}

// Clear resets the transcripts of the named sessions, or of every session
// when called with no arguments. Idempotent.
func (b *Chatbot) Clear(sessionIDs ...string) {
	b.store.Clear(sessionIDs...)
	b.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventClear,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "chatbot.Clear",
		Data:      map[string]any{"sessions": len(sessionIDs)},
	})
}

// Summary formats the most recent messages of a session into numbered,
// role-prefixed lines for display. Returns a fixed message when the
// transcript is empty. Never mutates stored history.
func (b *Chatbot) Summary(sessionID string) string {
	recent := b.store.Summarize(sessionID, summaryItems)
	if len(recent) == 0 {
		return noHistoryMessage
	}

	var sb strings.Builder
	sb.WriteString("Recent conversation:\n")
	for i, msg := range recent {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, displayRole(msg.Role), msg.Content)
	}
	return sb.String()
}

// buildDraftMessages assembles the history-aware draft request: system
// preamble, then the most recent maxTurns turns of the transcript, then the
// new user message. maxTurns <= 0 passes the full history.
func (b *Chatbot) buildDraftMessages(sess session.Session, userMsg protocol.Message) []protocol.Message {
	history := sess.Messages()
	if b.maxTurns > 0 && len(history) > 2*b.maxTurns {
		history = history[len(history)-2*b.maxTurns:]
	}

	messages := make([]protocol.Message, 0, len(history)+2)
	if b.systemPrompt != "" {
		messages = append(messages, protocol.NewMessage(protocol.RoleSystem, b.systemPrompt))
	}
	messages = append(messages, history...)
	messages = append(messages, userMsg)
	return messages
}

// buildReformatMessages assembles the stateless reformat request: the fixed
// instruction and one user message carrying the draft. Conversation history
// never reaches this stage.
func (b *Chatbot) buildReformatMessages(draft string) []protocol.Message {
	return []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, b.reformatPrompt),
		protocol.NewMessage(protocol.RoleUser, draft),
	}
}

func (b *Chatbot) fail(ctx context.Context, sessionID, stage string, err error) error {
	wrapped := fmt.Errorf("%s generation failed: %w", stage, err)
	b.emit(ctx, EventError, observability.LevelError, map[string]any{
		"session": sessionID,
		"stage":   stage,
		"error":   wrapped.Error(),
	})
	return wrapped
}

func (b *Chatbot) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	b.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "chatbot.Chat",
		Data:      data,
	})
}

func displayRole(role protocol.Role) string {
	switch role {
	case protocol.RoleUser:
		return "Human"
	case protocol.RoleAssistant:
		return "AI"
	case protocol.RoleSystem:
		return "System"
	}
	return string(role)
}
