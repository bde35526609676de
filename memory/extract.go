package memory

import (
	"strings"
)

// Local fallback extraction of durable items from a completed turn. This
// runs when the LLM extraction call fails: long-term memory is best-effort,
// so a crude per-turn heuristic beats losing the turn entirely.

var preferenceMarkers = []string{
	"i prefer", "i like", "i love", "i hate", "i dislike",
	"always use", "never use", "my favorite", "i'd rather", "i want",
}

var decisionMarkers = []string{
	"decided", "we will", "i will", "going to use", "let's use",
	"agreed", "chose", "switching to", "settled on", "plan to",
}

var factMarkers = []string{
	"my name is", "i am ", "i'm ", "i work", "i live",
	" is ", " are ", " uses ", " has ", " runs ",
}

// ExtractDurableItems splits a turn into sentences, filters obviously
// transient content, and classifies what remains as a preference, decision,
// or fact. Sentences that match no category are dropped.
func ExtractDurableItems(userText, assistantText string) []string {
	var items []string
	for _, text := range []string{userText, assistantText} {
		for _, sentence := range splitSentences(text) {
			if isTransient(sentence) {
				continue
			}
			if category, ok := classifySentence(sentence); ok {
				items = append(items, category+": "+sentence)
			}
		}
	}
	return items
}

func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s != "" {
			out = append(out, s)
		}
	}
	for _, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			if r != '\n' {
				cur.WriteRune(r)
			}
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// isTransient filters sentences that have no durable value: questions,
// error output, URLs, code fragments, and fragments too short to mean
// anything on their own.
func isTransient(sentence string) bool {
	if len(sentence) < 20 {
		return true
	}
	lower := strings.ToLower(sentence)
	switch {
	case strings.HasSuffix(sentence, "?"):
		return true
	case strings.Contains(lower, "error"):
		return true
	case strings.Contains(lower, "http://"), strings.Contains(lower, "https://"):
		return true
	case looksLikeCode(sentence):
		return true
	}
	return false
}

func looksLikeCode(s string) bool {
	if strings.Contains(s, "```") || strings.Contains(s, "`") {
		return true
	}
	symbols := 0
	for _, r := range s {
		switch r {
		case '{', '}', '(', ')', ';', '=', '<', '>', '[', ']':
			symbols++
		}
	}
	return symbols >= 4
}

func classifySentence(sentence string) (string, bool) {
	lower := strings.ToLower(sentence)
	for _, marker := range preferenceMarkers {
		if strings.Contains(lower, marker) {
			return "Preference", true
		}
	}
	for _, marker := range decisionMarkers {
		if strings.Contains(lower, marker) {
			return "Decision", true
		}
	}
	for _, marker := range factMarkers {
		if strings.Contains(lower, marker) {
			return "Fact", true
		}
	}
	return "", false
}
