package memory

import (
	"strings"
	"testing"

	"github.com/kenzoyan/kalacode/llm"
)

func TestEstimateMessageContentOnly(t *testing.T) {
	msg := llm.Message{Role: "user", Content: strings.Repeat("a", 40)}
	if got := EstimateMessage(msg); got != 40/4+5 {
		t.Fatalf("EstimateMessage = %d, want %d", got, 15)
	}
}

func TestEstimateMessageCountsToolCalls(t *testing.T) {
	msg := llm.Message{
		Role: "assistant",
		ToolCalls: []llm.ToolCall{
			{Function: llm.ToolCallFunction{Name: "read", Arguments: `{"path":"file.txt"}`}},
		},
	}
	want := len("read")/4 + len(`{"path":"file.txt"}`)/4 + 5
	if got := EstimateMessage(msg); got != want {
		t.Fatalf("EstimateMessage = %d, want %d", got, want)
	}
}

func TestEstimateMessageCountsCharactersNotBytes(t *testing.T) {
	// 40 two-byte runes: 80 bytes, but 40 characters.
	msg := llm.Message{Role: "user", Content: strings.Repeat("é", 40)}
	if got := EstimateMessage(msg); got != 40/4+5 {
		t.Fatalf("EstimateMessage = %d, want %d", got, 40/4+5)
	}
}

func TestEstimateEmptyMessageIsOverheadOnly(t *testing.T) {
	if got := EstimateMessage(llm.Message{Role: "user"}); got != perMessageOverhead {
		t.Fatalf("EstimateMessage = %d, want %d", got, perMessageOverhead)
	}
}

func TestEstimateTotal(t *testing.T) {
	msgs := []llm.Message{
		{Role: "user", Content: strings.Repeat("a", 8)},
		{Role: "assistant", Content: strings.Repeat("b", 12)},
	}
	want := EstimateMessage(msgs[0]) + EstimateMessage(msgs[1])
	if got := EstimateTotal(msgs); got != want {
		t.Fatalf("EstimateTotal = %d, want %d", got, want)
	}
}
