// Package session manages per-conversation transcripts for the chat
// pipeline: each session owns an ordered, append-only message history, and
// the Store maps opaque session ids to live sessions.
package session

import (
	"github.com/duetbot/duet/core/protocol"
)

// Session holds an ordered sequence of conversation messages. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a message to the conversation history.
	AddMessage(msg protocol.Message)
	// AddExchange appends a user message and the resulting assistant message
	// as one atomic pair. No reader can observe the pair half-appended.
	AddExchange(user, assistant protocol.Message)
	// Messages returns a defensive copy of the conversation history.
	Messages() []protocol.Message
	// Len returns the number of messages in the history.
	Len() int
	// Clear resets the conversation history.
	Clear()
}
