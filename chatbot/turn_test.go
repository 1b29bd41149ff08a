package chatbot_test

import (
	"testing"

	"github.com/duetbot/duet/chatbot"
	"github.com/duetbot/duet/core/protocol"
)

func TestEncodeInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "Hi", want: "Hi"},
		{name: "surrounding whitespace trimmed", raw: "  Hi there \n", want: "Hi there"},
		{name: "empty falls back", raw: "", want: chatbot.FallbackGreeting},
		{name: "whitespace only falls back", raw: "   \t\n", want: chatbot.FallbackGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := chatbot.EncodeInput(tt.raw)
			if msg.Role != protocol.RoleUser {
				t.Errorf("got role %q, want user", msg.Role)
			}
			if msg.Content != tt.want {
				t.Errorf("got content %q, want %q", msg.Content, tt.want)
			}
		})
	}
}
