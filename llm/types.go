package llm

import (
	"context"
	"time"
)

// Message is a single entry in a chat conversation, in OpenAI
// chat-completions shape.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a completed tool invocation requested by the model.
// Function.Arguments is the raw JSON string as streamed by the provider;
// it is not validated until the tool layer parses it.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallDelta is one incremental piece of a tool call inside a stream
// fragment. Index is a pointer because the wire format distinguishes
// "index zero" from "index absent".
type ToolCallDelta struct {
	Index          *int
	ID             string
	Type           string
	NameDelta      string
	ArgumentsDelta string
}

// Fragment is one chunk of a streamed response: an optional text delta
// and/or incremental tool-call deltas.
type Fragment struct {
	TextDelta string
	ToolCalls []ToolCallDelta
}

// Request is a chat-completions request in provider-neutral form.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []map[string]any
	Temperature float64
	MaxTokens   int
}

// Result is a completed (non-streaming) response.
type Result struct {
	Content   string
	ToolCalls []ToolCall
	Duration  time.Duration
}

// Stream yields response fragments in delivery order. Recv returns io.EOF
// when the provider signals the end of the stream.
type Stream interface {
	Recv() (Fragment, error)
	Close() error
}

// Client is the provider contract the agent depends on.
type Client interface {
	// Chat performs a blocking chat-completions call.
	Chat(ctx context.Context, req Request) (*Result, error)
	// ChatStream opens a streaming chat-completions call.
	ChatStream(ctx context.Context, req Request) (Stream, error)
}
