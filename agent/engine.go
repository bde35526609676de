package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kenzoyan/kalacode/llm"
	"github.com/kenzoyan/kalacode/memory"
	"github.com/kenzoyan/kalacode/tools"
)

// Hooks let the caller observe the session as it runs. All hooks are
// optional and invoked on the session goroutine.
type Hooks struct {
	OnText       func(delta string)
	OnToolCall   func(name, arguments string)
	OnToolResult func(name, result string)
}

// Config carries the per-session knobs. Zero values fall back to
// sensible defaults in New.
type Config struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	Limits       Limits
	Streaming    bool
	Prompt       PromptSpec
	SummaryChars int
	Hooks        Hooks
}

// Engine drives the conversation loop for one session: window
// maintenance, model calls, tool dispatch and long-term flushes.
// It is not safe for concurrent use; each session owns one Engine.
type Engine struct {
	client   llm.Client
	registry *tools.Registry
	window   *memory.Window
	longTerm *memory.LongTermStore
	buffer   SessionBuffer
	cfg      Config
	log      *slog.Logger
}

// New builds an Engine. longTerm may be nil when persistent memory is
// disabled; flushes then become no-ops.
func New(client llm.Client, registry *tools.Registry, window *memory.Window, longTerm *memory.LongTermStore, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	cfg.Limits = cfg.Limits.Normalize()
	if strings.TrimSpace(cfg.Prompt.Identity) == "" && len(cfg.Prompt.Rules) == 0 {
		memo := cfg.Prompt.MemorySummary
		cfg.Prompt = DefaultPromptSpec()
		cfg.Prompt.MemorySummary = memo
	}
	if cfg.SummaryChars <= 0 {
		cfg.SummaryChars = memory.DefaultMaxSummaryChars
	}
	return &Engine{
		client:   client,
		registry: registry,
		window:   window,
		longTerm: longTerm,
		cfg:      cfg,
		log:      log,
	}
}

func (e *Engine) Window() *memory.Window { return e.window }

func (e *Engine) Store() *memory.LongTermStore { return e.longTerm }

func (e *Engine) Stats() memory.WindowStats { return e.window.Stats() }

// Reset drops the working window and the flush buffer. Callers that
// want the buffered turns persisted must Flush first.
func (e *Engine) Reset() {
	e.window.Clear()
	e.buffer.Clear()
}

// ProcessInput runs one user input to completion: model calls and tool
// rounds until the model answers in plain text, or the iteration limit
// trips.
func (e *Engine) ProcessInput(ctx context.Context, input string) (string, error) {
	e.window.Append(llm.Message{Role: "user", Content: input})

	for iteration := 1; iteration <= e.cfg.Limits.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		outbound := make([]llm.Message, 0, e.window.Stats().Count+1)
		outbound = append(outbound, llm.Message{Role: "system", Content: e.systemPrompt()})
		outbound = append(outbound, e.window.Snapshot()...)

		text, calls, err := e.modelTurn(ctx, outbound)
		if err != nil {
			return "", err
		}

		if len(calls) == 0 {
			e.window.Append(llm.Message{Role: "assistant", Content: text})
			e.buffer.Add(input, text)
			return text, nil
		}

		e.log.Debug("tool_round", "iteration", iteration, "calls", len(calls))

		// The assistant message and its tool results enter the window
		// as one batch so cancellation mid-dispatch never leaves a
		// dangling assistant-with-calls message behind.
		batch := make([]llm.Message, 0, len(calls)+1)
		for i := range calls {
			if calls[i].ID == "" {
				calls[i].ID = "call_" + uuid.NewString()
			}
		}
		batch = append(batch, llm.Message{Role: "assistant", Content: text, ToolCalls: calls})
		for _, call := range calls {
			batch = append(batch, llm.Message{
				Role:       "tool",
				Content:    e.dispatch(ctx, call),
				ToolCallID: call.ID,
			})
		}
		e.window.AppendAll(batch)
	}

	return "", ErrIterationLimit
}

func (e *Engine) dispatch(ctx context.Context, call llm.ToolCall) string {
	name := call.Function.Name
	if e.cfg.Hooks.OnToolCall != nil {
		e.cfg.Hooks.OnToolCall(name, call.Function.Arguments)
	}
	result := func() string {
		params, err := decodeArguments(call.Function.Arguments)
		if err != nil {
			return "error: invalid tool arguments: " + err.Error()
		}
		return e.registry.Execute(ctx, name, params)
	}()
	if e.cfg.Hooks.OnToolResult != nil {
		e.cfg.Hooks.OnToolResult(name, result)
	}
	return result
}

// modelTurn performs one provider call and returns the assembled
// assistant text and tool calls.
func (e *Engine) modelTurn(ctx context.Context, messages []llm.Message) (string, []llm.ToolCall, error) {
	req := llm.Request{
		Model:       e.cfg.Model,
		Messages:    messages,
		Tools:       e.registry.OpenAISchemas(),
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
	}

	if !e.cfg.Streaming {
		result, err := e.client.Chat(ctx, req)
		if err != nil {
			return "", nil, err
		}
		if e.cfg.Hooks.OnText != nil && result.Content != "" {
			e.cfg.Hooks.OnText(result.Content)
		}
		return result.Content, result.ToolCalls, nil
	}

	stream, err := e.client.ChatStream(ctx, req)
	if err != nil {
		return "", nil, err
	}
	defer stream.Close()

	asm := llm.NewAssembler()
	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}
		if e.cfg.Hooks.OnText != nil && frag.TextDelta != "" {
			e.cfg.Hooks.OnText(frag.TextDelta)
		}
		if err := asm.Feed(frag); err != nil {
			return "", nil, err
		}
	}
	return asm.Finish()
}

func (e *Engine) systemPrompt() string {
	spec := e.cfg.Prompt
	if e.longTerm != nil {
		summary, err := e.longTerm.Summary(e.cfg.SummaryChars)
		if err != nil {
			e.log.Warn("memory_summary_failed", "error", err.Error())
		} else {
			spec.MemorySummary = summary
		}
	}
	return BuildSystemPrompt(spec)
}

func decodeArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, err
	}
	return params, nil
}
