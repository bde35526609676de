package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

type GlobTool struct{}

func NewGlobTool() *GlobTool { return &GlobTool{} }

func (t *GlobTool) Name() string { return "glob" }

func (t *GlobTool) Description() string {
	return "Finds files by glob pattern (** supported), newest first by modification time."
}

func (t *GlobTool) ParameterSchema() string {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pat":  map[string]any{"type": "string", "description": "Glob pattern, e.g. **/*.go."},
			"path": map[string]any{"type": "string", "description": "Directory to search (default: current directory)."},
		},
		"required": []string{"pat"},
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (t *GlobTool) Execute(_ context.Context, params map[string]any) (string, error) {
	pat, _ := params["pat"].(string)
	pat = strings.TrimSpace(pat)
	if pat == "" {
		return "", fmt.Errorf("missing required param: pat")
	}
	root, _ := params["path"].(string)
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = expandHomePath(root)

	matches, err := doublestar.Glob(os.DirFS(root), pat)
	if err != nil {
		return "", err
	}

	type entry struct {
		path  string
		mtime time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		full := filepath.Join(root, m)
		var mtime time.Time
		if fi, err := os.Stat(full); err == nil && !fi.IsDir() {
			mtime = fi.ModTime()
		}
		entries = append(entries, entry{path: full, mtime: mtime})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].mtime.After(entries[j].mtime)
	})

	if len(entries) == 0 {
		return "none", nil
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return strings.Join(paths, "\n"), nil
}
