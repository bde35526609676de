package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kenzoyan/kalacode/llm"
)

func userMsg(text string) llm.Message {
	return llm.Message{Role: "user", Content: text}
}

func assistantWithCall(id, name string) llm.Message {
	return llm.Message{
		Role: "assistant",
		ToolCalls: []llm.ToolCall{
			{ID: id, Type: "function", Function: llm.ToolCallFunction{Name: name, Arguments: "{}"}},
		},
	}
}

func toolAnswer(id, content string) llm.Message {
	return llm.Message{Role: "tool", ToolCallID: id, Content: content}
}

func TestWindowMessageCountEviction(t *testing.T) {
	w := NewWindow(3, 0)
	for i := 0; i < 5; i++ {
		w.Append(userMsg(fmt.Sprintf("message %d", i)))
	}
	snap := w.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(snap))
	}
	if snap[0].Content != "message 2" {
		t.Fatalf("expected oldest retained to be message 2, got %q", snap[0].Content)
	}
}

func TestWindowTokenEviction(t *testing.T) {
	// Each message: 400 chars / 4 + 5 overhead = 105 tokens.
	w := NewWindow(20, 250)
	for i := 0; i < 4; i++ {
		w.Append(userMsg(strings.Repeat("x", 400)))
	}
	stats := w.Stats()
	if stats.Tokens > 250 {
		t.Fatalf("token ceiling not enforced: %d tokens retained", stats.Tokens)
	}
	if stats.Count != 2 {
		t.Fatalf("expected 2 messages within budget, got %d", stats.Count)
	}
}

func TestWindowKeepsAtLeastOneMessage(t *testing.T) {
	w := NewWindow(20, 10)
	w.Append(userMsg(strings.Repeat("x", 10_000)))
	if got := len(w.Snapshot()); got != 1 {
		t.Fatalf("oversized single message must be kept, got %d messages", got)
	}
}

func TestWindowToolPairSurvivesEviction(t *testing.T) {
	w := NewWindow(3, 0)
	w.Append(userMsg("first question"))
	w.Append(assistantWithCall("a1", "read_file"))
	w.Append(toolAnswer("a1", "contents"))

	if got := len(w.Snapshot()); got != 3 {
		t.Fatalf("expected all 3 retained, got %d", got)
	}

	// A fourth message evicts the oldest user message; the assistant/tool
	// pair for a1 must survive intact.
	w.Append(userMsg("second question"))
	snap := w.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 messages after eviction, got %d", len(snap))
	}
	if len(snap[0].ToolCalls) == 0 || snap[0].ToolCalls[0].ID != "a1" {
		t.Fatalf("expected assistant message with call a1 first, got %+v", snap[0])
	}
	if snap[1].Role != "tool" || snap[1].ToolCallID != "a1" {
		t.Fatalf("expected tool answer for a1 second, got %+v", snap[1])
	}
}

func TestWindowDropsOrphanToolMessages(t *testing.T) {
	w := NewWindow(2, 0)
	w.Append(assistantWithCall("a1", "bash"))
	w.Append(toolAnswer("a1", "ok"))
	// Appending two user messages evicts the assistant message; the tool
	// answer becomes an orphan and must be dropped, not resubmitted.
	w.Append(userMsg("next message here"))
	w.Append(userMsg("and one more message"))

	for _, msg := range w.Snapshot() {
		if msg.Role == "tool" {
			t.Fatalf("orphan tool message retained: %+v", msg)
		}
	}
}

func TestWindowLinkageInvariantUnderChurn(t *testing.T) {
	w := NewWindow(5, 0)
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("call_%d", i)
		w.Append(userMsg(fmt.Sprintf("question number %d", i)))
		w.Append(assistantWithCall(id, "grep"))
		w.Append(toolAnswer(id, "result"))
	}

	snap := w.Snapshot()
	if len(snap) > 5 {
		t.Fatalf("window exceeded max messages: %d", len(snap))
	}
	open := map[string]bool{}
	for _, msg := range snap {
		if msg.Role == "assistant" {
			for _, call := range msg.ToolCalls {
				open[call.ID] = true
			}
		}
		if msg.Role == "tool" && !open[msg.ToolCallID] {
			t.Fatalf("tool message %q has no preceding assistant declaration", msg.ToolCallID)
		}
	}
}

func TestWindowClearAndStats(t *testing.T) {
	w := NewWindow(10, 1000)
	w.Append(userMsg("hello there friend"))
	stats := w.Stats()
	if stats.Count != 1 || stats.Tokens == 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MaxMessages != 10 || stats.MaxTokens != 1000 {
		t.Fatalf("unexpected ceilings: %+v", stats)
	}
	w.Clear()
	if got := w.Stats().Count; got != 0 {
		t.Fatalf("expected empty window after clear, got %d", got)
	}
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	w := NewWindow(10, 0)
	w.Append(userMsg("original"))
	snap := w.Snapshot()
	snap[0].Content = "mutated"
	if w.Snapshot()[0].Content != "original" {
		t.Fatal("snapshot mutation leaked into the window")
	}
}
