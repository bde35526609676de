// Package transcript exports a session's context window as a markdown
// document with YAML frontmatter.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kenzoyan/kalacode/llm"
)

type Frontmatter struct {
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Summary   string   `yaml:"summary"`
	SessionID string   `yaml:"session_id,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
}

func NewSessionID() string { return uuid.NewString() }

// NewFrontmatter builds frontmatter for a session exported now. The
// summary is taken from the first user message.
func NewFrontmatter(sessionID string, msgs []llm.Message, now time.Time) Frontmatter {
	stamp := now.UTC().Format(time.RFC3339)
	return Frontmatter{
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Summary:   summaryLine(msgs),
		SessionID: sessionID,
		Tags:      []string{"kalacode", "session"},
	}
}

// Render produces the full markdown document.
func Render(fm Frontmatter, msgs []llm.Message) (string, error) {
	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(head)
	sb.WriteString("---\n")

	for _, m := range msgs {
		switch m.Role {
		case "user":
			sb.WriteString("\n## User\n\n")
			sb.WriteString(strings.TrimSpace(m.Content))
			sb.WriteString("\n")
		case "assistant":
			sb.WriteString("\n## Assistant\n\n")
			if text := strings.TrimSpace(m.Content); text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
			for _, call := range m.ToolCalls {
				fmt.Fprintf(&sb, "\n> tool call `%s` %s\n", call.Function.Name, strings.TrimSpace(call.Function.Arguments))
			}
		case "tool":
			fmt.Fprintf(&sb, "\n> tool result (%s):\n>\n", m.ToolCallID)
			for _, line := range strings.Split(strings.TrimRight(m.Content, "\n"), "\n") {
				sb.WriteString("> ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}

// Export renders and writes the transcript, creating parent
// directories as needed.
func Export(path string, fm Frontmatter, msgs []llm.Message) error {
	doc, err := Render(fm, msgs)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create transcript dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

func summaryLine(msgs []llm.Message) string {
	for _, m := range msgs {
		if m.Role != "user" {
			continue
		}
		text := strings.Join(strings.Fields(m.Content), " ")
		if text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) > 80 {
			return string(runes[:77]) + "..."
		}
		return text
	}
	return "kalacode session"
}
