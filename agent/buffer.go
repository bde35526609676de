package agent

import "strings"

// Turn is one completed user/assistant exchange held for memory
// extraction at flush time.
type Turn struct {
	User      string
	Assistant string
}

// SessionBuffer accumulates turns between flushes. It only holds the
// final assistant reply of each exchange; intermediate tool traffic
// stays in the context window and never reaches long-term extraction.
type SessionBuffer struct {
	turns []Turn
}

func (b *SessionBuffer) Add(user, assistant string) {
	if strings.TrimSpace(user) == "" && strings.TrimSpace(assistant) == "" {
		return
	}
	b.turns = append(b.turns, Turn{User: user, Assistant: assistant})
}

func (b *SessionBuffer) Len() int { return len(b.turns) }

func (b *SessionBuffer) Empty() bool { return len(b.turns) == 0 }

func (b *SessionBuffer) Snapshot() []Turn {
	out := make([]Turn, len(b.turns))
	copy(out, b.turns)
	return out
}

func (b *SessionBuffer) Clear() {
	b.turns = nil
}

// Transcript renders the buffered turns as plain text for the
// extraction prompt.
func (b *SessionBuffer) Transcript() string {
	var sb strings.Builder
	for _, t := range b.turns {
		if strings.TrimSpace(t.User) != "" {
			sb.WriteString("User: ")
			sb.WriteString(strings.TrimSpace(t.User))
			sb.WriteString("\n")
		}
		if strings.TrimSpace(t.Assistant) != "" {
			sb.WriteString("Assistant: ")
			sb.WriteString(strings.TrimSpace(t.Assistant))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
