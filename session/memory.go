package session

import (
	"sync"

	"github.com/duetbot/duet/core/protocol"
	"github.com/google/uuid"
)

type memorySession struct {
	id       string
	messages []protocol.Message
	mu       sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice.
// The session is assigned a unique UUIDv7 identifier.
func NewMemorySession() Session {
	return newMemorySession(uuid.Must(uuid.NewV7()).String())
}

func newMemorySession(id string) *memorySession {
	return &memorySession{id: id}
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) AddMessage(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *memorySession) AddExchange(user, assistant protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, user, assistant)
}

func (s *memorySession) Messages() []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]protocol.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *memorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// tail returns a copy of the last max messages without copying the rest of
// the history. max <= 0 yields an empty slice.
func (s *memorySession) tail(max int) []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if max <= 0 {
		return nil
	}
	start := len(s.messages) - max
	if start < 0 {
		start = 0
	}

	copied := make([]protocol.Message, len(s.messages)-start)
	copy(copied, s.messages[start:])
	return copied
}
