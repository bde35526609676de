package builtin

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const grepMaxHits = 50

type GrepTool struct{}

func NewGrepTool() *GrepTool { return &GrepTool{} }

func (t *GrepTool) Name() string { return "grep" }

func (t *GrepTool) Description() string {
	return "Searches files under a directory for a regex pattern; returns path:line:text hits."
}

func (t *GrepTool) ParameterSchema() string {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pat":  map[string]any{"type": "string", "description": "Regular expression to search for."},
			"path": map[string]any{"type": "string", "description": "Directory to search (default: current directory)."},
		},
		"required": []string{"pat"},
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (t *GrepTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	pat, _ := params["pat"].(string)
	if strings.TrimSpace(pat) == "" {
		return "", fmt.Errorf("missing required param: pat")
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	root, _ := params["path"].(string)
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = expandHomePath(root)

	var hits []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(hits) >= grepMaxHits {
			return filepath.SkipAll
		}
		hits = append(hits, grepFile(re, path, grepMaxHits-len(hits))...)
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "none", nil
	}
	return strings.Join(hits, "\n"), nil
}

func grepFile(re *regexp.Regexp, path string, budget int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var hits []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) {
			hits = append(hits, fmt.Sprintf("%s:%d:%s", path, lineNum, strings.TrimRight(line, " \t")))
			if len(hits) >= budget {
				break
			}
		}
	}
	return hits
}
