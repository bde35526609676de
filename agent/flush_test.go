package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kenzoyan/kalacode/llm"
	"github.com/kenzoyan/kalacode/memory"
	"github.com/kenzoyan/kalacode/tools"
)

func newFlushEngine(t *testing.T, client *scriptedClient) (*Engine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.md")
	store := memory.NewLongTermStore(memory.LongTermConfig{FilePath: path})
	e := New(client, tools.NewRegistry(), memory.NewWindow(0, 0), store, Config{
		Model:     "test-model",
		Streaming: true,
	}, nil)
	return e, path
}

func TestFlushEmptyBufferMakesNoCall(t *testing.T) {
	client := &scriptedClient{}
	e, path := newFlushEngine(t, client)

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if client.chatCalls != 0 {
		t.Fatalf("chat calls = %d, want 0", client.chatCalls)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty flush must not create the memory file")
	}
}

func TestFlushStoresExtractedBullets(t *testing.T) {
	client := &scriptedClient{chatResult: &llm.Result{
		Content: "- Preference: the user prefers short replies\n- Decision: migrate the service to Postgres\n",
	}}
	e, path := newFlushEngine(t, client)
	e.buffer.Add("keep replies short please", "Understood.")

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if client.chatCalls != 1 {
		t.Fatalf("chat calls = %d, want 1", client.chatCalls)
	}
	if !strings.Contains(client.lastChat.Messages[1].Content, "keep replies short please") {
		t.Fatalf("extraction prompt missing transcript: %+v", client.lastChat.Messages)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read memory file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "- Preference: the user prefers short replies") ||
		!strings.Contains(text, "- Decision: migrate the service to Postgres") {
		t.Fatalf("memory file:\n%s", text)
	}
	if !e.buffer.Empty() {
		t.Fatal("buffer must be cleared after flush")
	}
}

func TestFlushFallsBackToHeuristicOnCallFailure(t *testing.T) {
	client := &scriptedClient{chatErr: errors.New("provider down")}
	e, path := newFlushEngine(t, client)
	e.buffer.Add("I prefer tabs over spaces for all my Go projects", "Noted, tabs it is.")

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read memory file: %v", err)
	}
	if !strings.Contains(strings.ToLower(string(data)), "prefer") {
		t.Fatalf("heuristic fallback wrote nothing useful:\n%s", string(data))
	}
	if !e.buffer.Empty() {
		t.Fatal("buffer must be cleared even when extraction fails")
	}
}

func TestFlushFallbackStoresEachTurnSeparately(t *testing.T) {
	client := &scriptedClient{chatErr: errors.New("provider down")}
	e, path := newFlushEngine(t, client)
	e.buffer.Add("I prefer tabs over spaces for all my Go projects", "Noted, tabs it is.")
	e.buffer.Add("We decided to ship the importer behind a feature flag", "Good call.")

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read memory file: %v", err)
	}
	if got := strings.Count(string(data), "\n### "); got != 2 {
		t.Fatalf("expected one dated block per turn (2), got %d:\n%s", got, string(data))
	}
}

func TestFlushEmptyExtractionWritesNothing(t *testing.T) {
	client := &scriptedClient{chatResult: &llm.Result{Content: ""}}
	e, path := newFlushEngine(t, client)
	e.buffer.Add("what time is it?", "I cannot tell the time.")

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("empty extraction must not create the memory file")
	}
	if !e.buffer.Empty() {
		t.Fatal("buffer must be cleared")
	}
}

func TestFlushWithoutStoreClearsBuffer(t *testing.T) {
	client := &scriptedClient{}
	e := New(client, tools.NewRegistry(), memory.NewWindow(0, 0), nil, Config{
		Model:     "test-model",
		Streaming: true,
	}, nil)
	e.buffer.Add("remember this", "ok")

	if err := e.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if client.chatCalls != 0 {
		t.Fatalf("chat calls = %d, want 0 with memory disabled", client.chatCalls)
	}
	if !e.buffer.Empty() {
		t.Fatal("buffer must be cleared")
	}
}
