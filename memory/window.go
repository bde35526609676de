package memory

import (
	"fmt"

	"github.com/kenzoyan/kalacode/llm"
)

const (
	DefaultMaxMessages = 20
	DefaultMaxTokens   = 100_000
)

// WindowStats reports the current occupancy of a context window.
type WindowStats struct {
	Count       int
	Tokens      int
	MaxMessages int
	MaxTokens   int
}

func (s WindowStats) String() string {
	return fmt.Sprintf("%d/%d messages, %d/%d tokens", s.Count, s.MaxMessages, s.Tokens, s.MaxTokens)
}

// Window is the short-term conversation memory: an ordered message sequence
// bounded by message and token ceilings. Eviction drops from the head and
// then repairs tool-call linkage, because the provider rejects a tool
// message whose tool_call_id no longer has a matching assistant message in
// the submitted context.
//
// A Window is owned by a single session goroutine; callers sharing one
// across goroutines must add their own mutual exclusion.
type Window struct {
	maxMessages int
	maxTokens   int
	messages    []llm.Message
}

// NewWindow creates a window with the given ceilings. Non-positive values
// fall back to the defaults.
func NewWindow(maxMessages, maxTokens int) *Window {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Window{maxMessages: maxMessages, maxTokens: maxTokens}
}

// Append adds a message at the tail and re-applies the eviction rules.
func (w *Window) Append(msg llm.Message) {
	w.messages = append(w.messages, msg)
	w.sanitize()
}

// AppendAll adds several messages, then evicts once.
func (w *Window) AppendAll(msgs []llm.Message) {
	w.messages = append(w.messages, msgs...)
	w.sanitize()
}

// Snapshot returns a copy of the retained sequence for submission to the
// provider. Mutating the copy does not affect the window.
func (w *Window) Snapshot() []llm.Message {
	out := make([]llm.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Clear empties the window.
func (w *Window) Clear() {
	w.messages = nil
}

// Stats reports current occupancy.
func (w *Window) Stats() WindowStats {
	return WindowStats{
		Count:       len(w.messages),
		Tokens:      EstimateTotal(w.messages),
		MaxMessages: w.maxMessages,
		MaxTokens:   w.maxTokens,
	}
}

func (w *Window) sanitize() {
	// Message-count ceiling: drop the oldest surplus.
	if len(w.messages) > w.maxMessages {
		w.messages = w.messages[len(w.messages)-w.maxMessages:]
	}

	// Token ceiling: drop from the head, but never below one message so
	// the submitted context is never empty. A single oversized message is
	// kept as-is.
	for EstimateTotal(w.messages) > w.maxTokens && len(w.messages) > 1 {
		w.messages = w.messages[1:]
	}

	w.dropOrphanToolMessages()
}

// dropOrphanToolMessages removes tool messages whose declaring assistant
// message was evicted. Each assistant message with tool calls opens its
// call ids; a tool message is kept only if it closes an open id.
func (w *Window) dropOrphanToolMessages() {
	kept := w.messages[:0]
	open := make(map[string]struct{})

	for _, msg := range w.messages {
		switch {
		case msg.Role == "assistant" && len(msg.ToolCalls) > 0:
			for _, call := range msg.ToolCalls {
				if call.ID != "" {
					open[call.ID] = struct{}{}
				}
			}
			kept = append(kept, msg)
		case msg.Role == "tool":
			if _, ok := open[msg.ToolCallID]; ok && msg.ToolCallID != "" {
				delete(open, msg.ToolCallID)
				kept = append(kept, msg)
			}
			// Orphan tool answers are dropped: resubmitting them would be
			// rejected by the provider.
		default:
			kept = append(kept, msg)
		}
	}
	w.messages = kept
}
