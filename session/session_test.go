package session_test

import (
	"sync"
	"testing"

	"github.com/duetbot/duet/core/protocol"
	"github.com/duetbot/duet/session"
)

func TestNewMemorySession(t *testing.T) {
	s := session.NewMemorySession()

	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if len(s.Messages()) != 0 {
		t.Errorf("new session should have 0 messages, got %d", len(s.Messages()))
	}
}

func TestSession_ID_Unique(t *testing.T) {
	s1 := session.NewMemorySession()
	s2 := session.NewMemorySession()

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSession_AddMessage_Order(t *testing.T) {
	s := session.NewMemorySession()

	roles := []protocol.Role{
		protocol.RoleSystem,
		protocol.RoleUser,
		protocol.RoleAssistant,
	}
	for _, role := range roles {
		s.AddMessage(protocol.NewMessage(role, string(role)))
	}

	msgs := s.Messages()
	if len(msgs) != len(roles) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(roles))
	}
	for i, msg := range msgs {
		if msg.Role != roles[i] {
			t.Errorf("message %d: got role %q, want %q", i, msg.Role, roles[i])
		}
	}
}

func TestSession_AddExchange(t *testing.T) {
	s := session.NewMemorySession()

	s.AddExchange(
		protocol.NewMessage(protocol.RoleUser, "Hi"),
		protocol.NewMessage(protocol.RoleAssistant, "Hello! How can I help?"),
	)

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != protocol.RoleUser || msgs[1].Role != protocol.RoleAssistant {
		t.Errorf("exchange order wrong: got roles %q, %q", msgs[0].Role, msgs[1].Role)
	}
}

func TestSession_AddExchange_PairsStayAdjacent(t *testing.T) {
	s := session.NewMemorySession()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.AddExchange(
				protocol.NewMessage(protocol.RoleUser, "q"),
				protocol.NewMessage(protocol.RoleAssistant, "a"),
			)
		}()
	}
	wg.Wait()

	msgs := s.Messages()
	if len(msgs) != 2*n {
		t.Fatalf("got %d messages, want %d", len(msgs), 2*n)
	}
	for i, msg := range msgs {
		want := protocol.RoleUser
		if i%2 == 1 {
			want = protocol.RoleAssistant
		}
		if msg.Role != want {
			t.Fatalf("message %d: got role %q, want %q — pair interleaved", i, msg.Role, want)
		}
	}
}

func TestSession_Messages_DefensiveCopy(t *testing.T) {
	s := session.NewMemorySession()
	s.AddMessage(protocol.NewMessage(protocol.RoleUser, "hello"))
	s.AddMessage(protocol.NewMessage(protocol.RoleAssistant, "hi"))

	msgs := s.Messages()
	msgs[0] = protocol.NewMessage(protocol.RoleSystem, "tampered")
	msgs = append(msgs, protocol.NewMessage(protocol.RoleUser, "extra"))

	original := s.Messages()
	if len(original) != 2 {
		t.Fatalf("got %d messages, want 2", len(original))
	}
	if original[0].Role != protocol.RoleUser {
		t.Errorf("first message role was mutated: got %q, want %q", original[0].Role, protocol.RoleUser)
	}
}

func TestSession_Len(t *testing.T) {
	s := session.NewMemorySession()

	if s.Len() != 0 {
		t.Errorf("got len %d, want 0", s.Len())
	}
	s.AddExchange(
		protocol.NewMessage(protocol.RoleUser, "q"),
		protocol.NewMessage(protocol.RoleAssistant, "a"),
	)
	if s.Len() != 2 {
		t.Errorf("got len %d, want 2", s.Len())
	}
}

func TestSession_Clear(t *testing.T) {
	s := session.NewMemorySession()
	s.AddMessage(protocol.NewMessage(protocol.RoleUser, "hello"))
	s.AddMessage(protocol.NewMessage(protocol.RoleAssistant, "hi"))

	s.Clear()

	if len(s.Messages()) != 0 {
		t.Errorf("got %d messages after Clear, want 0", len(s.Messages()))
	}
}

func TestSession_Clear_ThenAdd(t *testing.T) {
	s := session.NewMemorySession()
	s.AddMessage(protocol.NewMessage(protocol.RoleUser, "first"))
	s.Clear()
	s.AddMessage(protocol.NewMessage(protocol.RoleUser, "second"))

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Content != "second" {
		t.Errorf("got content %q, want %q", msgs[0].Content, "second")
	}
}

func TestSession_Concurrent_AddAndRead(t *testing.T) {
	s := session.NewMemorySession()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)

	for range n {
		go func() {
			defer wg.Done()
			s.AddMessage(protocol.NewMessage(protocol.RoleUser, "msg"))
		}()
		go func() {
			defer wg.Done()
			_ = s.Messages()
		}()
	}
	wg.Wait()

	if got := s.Len(); got != n {
		t.Errorf("got %d messages, want %d", got, n)
	}
}

func TestSession_Concurrent_AddAndClear(t *testing.T) {
	s := session.NewMemorySession()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)

	for range n {
		go func() {
			defer wg.Done()
			s.AddMessage(protocol.NewMessage(protocol.RoleUser, "msg"))
		}()
		go func() {
			defer wg.Done()
			s.Clear()
		}()
	}
	wg.Wait()
}
