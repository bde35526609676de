package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type EditFileTool struct {
	DenyPaths []string
}

func NewEditFileTool(denyPaths []string) *EditFileTool {
	return &EditFileTool{DenyPaths: denyPaths}
}

func (t *EditFileTool) Name() string { return "edit_file" }

func (t *EditFileTool) Description() string {
	return "Replaces old text with new text in a file. The old text must be unique unless all=true."
}

func (t *EditFileTool) ParameterSchema() string {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to edit."},
			"old":  map[string]any{"type": "string", "description": "Exact text to replace."},
			"new":  map[string]any{"type": "string", "description": "Replacement text."},
			"all":  map[string]any{"type": "boolean", "description": "Replace every occurrence (default: false)."},
		},
		"required": []string{"path", "old", "new"},
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (t *EditFileTool) Execute(_ context.Context, params map[string]any) (string, error) {
	path, _ := params["path"].(string)
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("missing required param: path")
	}
	path = expandHomePath(path)

	if offending, ok := denyPath(path, t.DenyPaths); ok {
		return "", fmt.Errorf("edit_file denied for path %q (matched %q)", path, offending)
	}

	old, _ := params["old"].(string)
	if old == "" {
		return "", fmt.Errorf("missing required param: old")
	}
	replacement, _ := params["new"].(string)
	replaceAll, _ := params["all"].(bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(data)

	count := strings.Count(text, old)
	if count == 0 {
		return "", fmt.Errorf("old text not found")
	}
	if count > 1 && !replaceAll {
		return "", fmt.Errorf("old text appears %d times, must be unique (use all=true)", count)
	}

	if replaceAll {
		text = strings.ReplaceAll(text, old, replacement)
	} else {
		text = strings.Replace(text, old, replacement, 1)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return "ok", nil
}
