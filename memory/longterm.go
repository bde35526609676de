package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultMaxSummaryChars = 2000
	DefaultMaxEntries      = 500
	DefaultDedupThreshold  = 0.82

	// maxItemChars bounds a single stored bullet item.
	maxItemChars = 150

	longTermHeader = "# Kalacode Long-Term Memory\n\n" +
		"This file stores persistent memory across sessions.\n\n" +
		"## Notes\n"
	blockMarker = "\n### "
)

// PersistenceError wraps a read/write fault on the durable store. Callers
// must not assume the operation took effect.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("long-term memory %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// LongTermConfig carries the tuning knobs for the durable store. The dedup
// threshold and retention bound are tuned heuristics, kept configurable
// rather than hard-coded.
type LongTermConfig struct {
	FilePath        string
	MaxSummaryChars int
	MaxEntries      int
	DedupThreshold  float64
}

// LongTermStore persists deduplicated durable facts as a human-readable
// markdown document: a fixed header followed by chronologically ordered
// dated note blocks of bullet items. The document is append-only except
// for retention trimming, which drops the oldest blocks first.
type LongTermStore struct {
	cfg LongTermConfig

	// Now is the clock used to date note blocks; tests override it.
	Now func() time.Time
}

// NewLongTermStore creates a store for the given file. Unset numeric config
// fields fall back to the defaults.
func NewLongTermStore(cfg LongTermConfig) *LongTermStore {
	if cfg.MaxSummaryChars <= 0 {
		cfg.MaxSummaryChars = DefaultMaxSummaryChars
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.DedupThreshold <= 0 {
		cfg.DedupThreshold = DefaultDedupThreshold
	}
	return &LongTermStore{cfg: cfg, Now: time.Now}
}

// FilePath returns the backing file path.
func (s *LongTermStore) FilePath() string { return s.cfg.FilePath }

// Read returns the full document, creating it from the header template on
// first use.
func (s *LongTermStore) Read() (string, error) {
	data, err := os.ReadFile(s.cfg.FilePath)
	if os.IsNotExist(err) {
		if err := s.writeDocument(longTermHeader); err != nil {
			return "", err
		}
		return longTermHeader, nil
	}
	if err != nil {
		return "", &PersistenceError{Op: "read", Path: s.cfg.FilePath, Err: err}
	}
	return string(data), nil
}

// Summary returns a bounded view of the document for prompt injection.
// The tail wins when truncating: content is append-only, so the most
// recent notes matter most.
func (s *LongTermStore) Summary(maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = s.cfg.MaxSummaryChars
	}
	text, err := s.Read()
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, nil
	}
	return string(runes[len(runes)-maxChars:]), nil
}

// StoreItems appends the given items as a new dated note block, discarding
// candidates that fuzzily duplicate an already-stored item, then enforces
// block retention. Storing zero surviving items leaves the document
// byte-identical (aside from retention trimming of an oversized file).
func (s *LongTermStore) StoreItems(items []string) error {
	text, err := s.Read()
	if err != nil {
		return err
	}

	existing := make([]string, 0, 64)
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "- "); ok {
			existing = append(existing, normalizeItem(rest))
		}
	}

	var survivors []string
	for _, item := range items {
		item = clipItem(item)
		if item == "" {
			continue
		}
		norm := normalizeItem(item)
		duplicate := false
		for _, have := range existing {
			if similarityRatio(norm, have) >= s.cfg.DedupThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		survivors = append(survivors, item)
		existing = append(existing, norm)
	}

	updated := text
	if len(survivors) > 0 {
		var block strings.Builder
		block.WriteString(blockMarker)
		block.WriteString(s.Now().UTC().Format("2006-01-02 15:04:05Z"))
		block.WriteString("\n")
		for _, item := range survivors {
			block.WriteString("- ")
			block.WriteString(item)
			block.WriteString("\n")
		}
		updated = text + block.String()
	}

	updated = s.trimBlocks(updated)
	if updated == text {
		return nil
	}
	return s.writeDocument(updated)
}

// Clear resets the document to the header template. Idempotent.
func (s *LongTermStore) Clear() error {
	return s.writeDocument(longTermHeader)
}

// trimBlocks drops the oldest note blocks until the retention bound holds,
// preserving the header verbatim.
func (s *LongTermStore) trimBlocks(text string) string {
	parts := strings.Split(text, blockMarker)
	if len(parts)-1 <= s.cfg.MaxEntries {
		return text
	}
	header := parts[0]
	blocks := parts[1:]
	kept := blocks[len(blocks)-s.cfg.MaxEntries:]
	var out strings.Builder
	out.WriteString(header)
	for _, b := range kept {
		out.WriteString(blockMarker)
		out.WriteString(b)
	}
	return out.String()
}

func (s *LongTermStore) writeDocument(text string) error {
	dir := filepath.Dir(s.cfg.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := os.WriteFile(s.cfg.FilePath, []byte(text), 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: s.cfg.FilePath, Err: err}
	}
	return nil
}

// clipItem collapses an item to a single line of at most maxItemChars
// characters.
func clipItem(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) <= maxItemChars {
		return cleaned
	}
	return string(runes[:maxItemChars-3]) + "..."
}
