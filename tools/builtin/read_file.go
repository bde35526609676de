package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ReadFileTool struct {
	MaxBytes  int64
	DenyPaths []string
}

func NewReadFileTool(maxBytes int64, denyPaths []string) *ReadFileTool {
	return &ReadFileTool{MaxBytes: maxBytes, DenyPaths: denyPaths}
}

func (t *ReadFileTool) Name() string { return "read_file" }

func (t *ReadFileTool) Description() string {
	return "Reads a text file and returns its content with line numbers (file path, not directory)."
}

func (t *ReadFileTool) ParameterSchema() string {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":   map[string]any{"type": "string", "description": "File path to read."},
			"offset": map[string]any{"type": "integer", "description": "Zero-based line offset to start from."},
			"limit":  map[string]any{"type": "integer", "description": "Maximum number of lines to return."},
		},
		"required": []string{"path"},
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (t *ReadFileTool) Execute(_ context.Context, params map[string]any) (string, error) {
	path, _ := params["path"].(string)
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("missing required param: path")
	}
	path = expandHomePath(path)

	if offending, ok := denyPath(path, t.DenyPaths); ok {
		return "", fmt.Errorf("read_file denied for path %q (matched %q)", path, offending)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if t.MaxBytes > 0 && int64(len(data)) > t.MaxBytes {
		data = data[:t.MaxBytes]
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	offset := intParam(params, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	limit := intParam(params, "limit", len(lines)-offset)
	if limit < 0 {
		limit = 0
	}
	end := offset + limit
	if end > len(lines) {
		end = len(lines)
	}

	var out strings.Builder
	for i, line := range lines[offset:end] {
		fmt.Fprintf(&out, "%4d| %s\n", offset+i+1, line)
	}
	return out.String(), nil
}
