package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

func ExpandHomePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || strings.TrimSpace(home) == "" {
			return filepath.Clean(p)
		}
		if p == "~" {
			return filepath.Clean(home)
		}
		return filepath.Clean(filepath.Join(home, strings.TrimPrefix(p, "~/")))
	}
	return filepath.Clean(p)
}

func ResolveStateDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "~/.kalacode"
	}
	return ExpandHomePath(dir)
}

func ResolveStateFile(stateDir string, filename string) string {
	base := ResolveStateDir(stateDir)
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return filepath.Clean(base)
	}
	return filepath.Clean(filepath.Join(base, filename))
}
