package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// chatter is the slice of the chatbot surface the REPL drives. Declared here
// so the loop can be exercised with a scripted fake.
type chatter interface {
	Chat(ctx context.Context, sessionID, input string) (string, error)
	Clear(sessionIDs ...string)
	Summary(sessionID string) string
}

type command int

const (
	cmdChat command = iota
	cmdQuit
	cmdClear
	cmdMemory
	cmdEmpty
)

// parseCommand classifies one input line. Command words are matched
// case-insensitively after trimming; everything else is a chat message.
func parseCommand(line string) command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "bye":
		return cmdQuit
	case "clear":
		return cmdClear
	case "memory":
		return cmdMemory
	case "":
		return cmdEmpty
	}
	return cmdChat
}

func printBanner(w io.Writer, model, baseURL string) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, bannerStyle.Render("duet — two-stage chat with your local model"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Model: %s @ %s\n", model, baseURL)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  - Type your message and press Enter to chat")
	fmt.Fprintln(w, "  - Type 'clear' to start a new conversation")
	fmt.Fprintln(w, "  - Type 'memory' to see conversation history")
	fmt.Fprintln(w, "  - Type 'quit' or 'exit' to end the session")
	fmt.Fprintln(w, rule)
}

// runREPL drives the line-oriented request/response loop until the input is
// exhausted, the user quits, or ctx is cancelled. A failed turn is reported
// once and the loop continues; the user may immediately retry.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, bot chatter, sessionID string) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintf(out, "\n%s ", promptStyle.Render("You:"))
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		switch parseCommand(line) {
		case cmdQuit:
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case cmdClear:
			bot.Clear()
			fmt.Fprintln(out, "Conversation memory cleared. Starting fresh conversation.")
		case cmdMemory:
			fmt.Fprintln(out, bot.Summary(sessionID))
		case cmdEmpty:
			// Reprompt.
		default:
			reply, err := bot.Chat(ctx, sessionID, line)
			if err != nil {
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Sorry, I encountered an error: %v", err)))
				continue
			}
			fmt.Fprintf(out, "%s %s\n", botStyle.Render("Bot:"), reply)
		}
	}

	return scanner.Err()
}
