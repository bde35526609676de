package builtin

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFileNumbersLines(t *testing.T) {
	path := writeTemp(t, "a.txt", "alpha\nbeta\ngamma\n")
	out, err := NewReadFileTool(0, nil).Execute(context.Background(), map[string]any{"path": path})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "   1| alpha\n   2| beta\n   3| gamma\n"
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestReadFileOffsetAndLimit(t *testing.T) {
	path := writeTemp(t, "a.txt", "one\ntwo\nthree\nfour\n")
	out, err := NewReadFileTool(0, nil).Execute(context.Background(), map[string]any{
		"path": path, "offset": float64(1), "limit": float64(2),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "   2| two\n   3| three\n" {
		t.Fatalf("out = %q", out)
	}
}

func TestReadFileDenyPath(t *testing.T) {
	path := writeTemp(t, "secrets.env", "TOKEN=x\n")
	_, err := NewReadFileTool(0, []string{"secrets.env"}).Execute(context.Background(), map[string]any{"path": path})
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected deny error, got %v", err)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")
	out, err := NewWriteFileTool(0, nil).Execute(context.Background(), map[string]any{
		"path": path, "content": "payload",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "ok" {
		t.Fatalf("out = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "payload" {
		t.Fatalf("file content = %q, err %v", data, err)
	}
}

func TestWriteFileRejectsOversizedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	_, err := NewWriteFileTool(8, nil).Execute(context.Background(), map[string]any{
		"path": path, "content": "far too large for the configured cap",
	})
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestEditFileReplacesUniqueMatch(t *testing.T) {
	path := writeTemp(t, "a.go", "const retries = 3\n")
	out, err := NewEditFileTool(nil).Execute(context.Background(), map[string]any{
		"path": path, "old": "retries = 3", "new": "retries = 5",
	})
	if err != nil || out != "ok" {
		t.Fatalf("execute: out=%q err=%v", out, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "const retries = 5\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestEditFileRequiresUniqueMatch(t *testing.T) {
	path := writeTemp(t, "a.txt", "x\nx\n")
	_, err := NewEditFileTool(nil).Execute(context.Background(), map[string]any{
		"path": path, "old": "x", "new": "y",
	})
	if err == nil || !strings.Contains(err.Error(), "unique") {
		t.Fatalf("expected uniqueness error, got %v", err)
	}

	out, err := NewEditFileTool(nil).Execute(context.Background(), map[string]any{
		"path": path, "old": "x", "new": "y", "all": true,
	})
	if err != nil || out != "ok" {
		t.Fatalf("all=true: out=%q err=%v", out, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "y\ny\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestEditFileMissingOldText(t *testing.T) {
	path := writeTemp(t, "a.txt", "content\n")
	_, err := NewEditFileTool(nil).Execute(context.Background(), map[string]any{
		"path": path, "old": "absent", "new": "y",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
