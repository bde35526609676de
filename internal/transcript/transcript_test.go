package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kenzoyan/kalacode/llm"
)

func sampleMessages() []llm.Message {
	return []llm.Message{
		{Role: "user", Content: "list the config files"},
		{Role: "assistant", ToolCalls: []llm.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: llm.ToolCallFunction{Name: "glob", Arguments: `{"pattern":"**/*.yaml"}`},
		}}},
		{Role: "tool", ToolCallID: "call_1", Content: "config/app.yaml\nconfig/dev.yaml"},
		{Role: "assistant", Content: "Two config files: config/app.yaml and config/dev.yaml."},
	}
}

func TestRenderFrontmatterAndBody(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fm := NewFrontmatter("sess-1", sampleMessages(), now)
	doc, err := Render(fm, sampleMessages())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(doc, "---\n") {
		t.Fatalf("missing frontmatter open:\n%s", doc)
	}
	for _, want := range []string{
		"created_at: \"2025-03-01T10:00:00Z\"",
		"summary: list the config files",
		"session_id: sess-1",
		"## User",
		"## Assistant",
		"tool call `glob`",
		"> config/app.yaml",
		"Two config files",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestSummaryTruncation(t *testing.T) {
	long := strings.Repeat("word ", 40)
	fm := NewFrontmatter("s", []llm.Message{{Role: "user", Content: long}}, time.Now())
	if len([]rune(fm.Summary)) > 80 {
		t.Fatalf("summary too long: %q", fm.Summary)
	}
	if !strings.HasSuffix(fm.Summary, "...") {
		t.Fatalf("summary not truncated: %q", fm.Summary)
	}
}

func TestExportCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions", "2025", "one.md")
	fm := NewFrontmatter(NewSessionID(), sampleMessages(), time.Now())
	if err := Export(path, fm, sampleMessages()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported transcript: %v", err)
	}
	if !strings.Contains(string(data), "## User") {
		t.Fatalf("exported doc:\n%s", string(data))
	}
}
