package chatbot

import "github.com/duetbot/duet/observability"

// Chatbot event types emitted during the two-stage pipeline.
const (
	EventChatStart        observability.EventType = "chatbot.chat.start"
	EventDraftComplete    observability.EventType = "chatbot.draft.complete"
	EventReformatComplete observability.EventType = "chatbot.reformat.complete"
	EventResponse         observability.EventType = "chatbot.response"
	EventClear            observability.EventType = "chatbot.clear"
	EventError            observability.EventType = "chatbot.error"
)
