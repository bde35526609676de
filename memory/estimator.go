package memory

import (
	"unicode/utf8"

	"github.com/kenzoyan/kalacode/llm"
)

// Token estimation uses a fixed heuristic (~4 characters per token plus a
// small per-message overhead). It is a cost proxy for window eviction, not
// a billing figure, and never calls the provider tokenizer.
const (
	charsPerToken      = 4
	perMessageOverhead = 5
)

// EstimateMessage approximates the token cost of a single message.
func EstimateMessage(msg llm.Message) int {
	tokens := utf8.RuneCountInString(msg.Content) / charsPerToken
	for _, call := range msg.ToolCalls {
		tokens += utf8.RuneCountInString(call.Function.Name) / charsPerToken
		tokens += utf8.RuneCountInString(call.Function.Arguments) / charsPerToken
	}
	return tokens + perMessageOverhead
}

// EstimateTotal approximates the token cost of a message sequence.
func EstimateTotal(msgs []llm.Message) int {
	total := 0
	for _, msg := range msgs {
		total += EstimateMessage(msg)
	}
	return total
}
