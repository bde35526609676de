package agent

import "strings"

const defaultIdentity = "You are Kalacode, a coding assistant that works inside the user's terminal and can use tools to inspect and modify the local workspace."

var defaultRules = []string{
	"Prefer tools over guessing: read files before editing them.",
	"Keep replies short; show file paths and commands explicitly.",
	"When a tool result starts with \"error:\", report the problem instead of retrying blindly.",
}

// PromptSpec describes the pieces of the system prompt. The memory
// summary is injected per session and already bounded by the store.
type PromptSpec struct {
	Identity      string
	Rules         []string
	MemorySummary string
}

func DefaultPromptSpec() PromptSpec {
	return PromptSpec{
		Identity: defaultIdentity,
		Rules:    defaultRules,
	}
}

func BuildSystemPrompt(spec PromptSpec) string {
	var sb strings.Builder
	identity := strings.TrimSpace(spec.Identity)
	if identity == "" {
		identity = defaultIdentity
	}
	sb.WriteString(identity)
	sb.WriteString("\n")
	if len(spec.Rules) > 0 {
		sb.WriteString("\nRules:\n")
		for _, r := range spec.Rules {
			sb.WriteString("- ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
	}
	if summary := strings.TrimSpace(spec.MemorySummary); summary != "" {
		sb.WriteString("\nLong-term memory (notes from earlier sessions):\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}
	return sb.String()
}
