package chatbot

import (
	"strings"

	"github.com/duetbot/duet/core/protocol"
)

// FallbackGreeting substitutes for blank user input so the pipeline stays
// total over all inputs. Callers that want to reject empty input must check
// before calling.
const FallbackGreeting = "Hello, how can I help you?"

// EncodeInput normalizes raw user input into a user message: surrounding
// whitespace is trimmed, and input that is empty after trimming becomes the
// fallback greeting. Never fails.
func EncodeInput(raw string) protocol.Message {
	text := strings.TrimSpace(raw)
	if text == "" {
		text = FallbackGreeting
	}
	return protocol.NewMessage(protocol.RoleUser, text)
}
