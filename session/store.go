package session

import (
	"sync"

	"github.com/duetbot/duet/core/protocol"
	"github.com/muesli/reflow/truncate"
)

// summarizeBudget caps how much of each message's content the summarize view
// shows. Applies to the returned copies only, never to stored content.
const summarizeBudget = 100

// Store maps opaque session ids to live sessions. Sessions are created
// lazily on first reference; the whole map lives in process memory and
// vanishes when the process exits. Thread-safe for concurrent access.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*memorySession)}
}

// Get returns the session for the given id, creating and registering an
// empty one if the id has not been seen before. Never fails.
func (s *Store) Get(id string) Session {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()
	if exists {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: another caller may have created it between the locks.
	if sess, exists := s.sessions[id]; exists {
		return sess
	}

	sess = newMemorySession(id)
	s.sessions[id] = sess
	return sess
}

// Clear resets the transcripts of the named sessions. With no arguments it
// resets every session in the store. Clearing an unseen id is a no-op;
// clearing twice is equivalent to clearing once.
func (s *Store) Clear(ids ...string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		for _, sess := range s.sessions {
			sess.Clear()
		}
		return
	}

	for _, id := range ids {
		if sess, exists := s.sessions[id]; exists {
			sess.Clear()
		}
	}
}

// Summarize returns up to max of the most recent messages of a session in
// chronological order, for display purposes only. Each returned message's
// content is truncated to a fixed character budget with an ellipsis marker;
// stored content is never mutated. An unseen id yields an empty result
// without creating a session.
func (s *Store) Summarize(id string, max int) []protocol.Message {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	recent := sess.tail(max)
	for i := range recent {
		recent[i].Content = truncate.StringWithTail(recent[i].Content, summarizeBudget, "...")
	}
	return recent
}

// Len returns the number of sessions in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
