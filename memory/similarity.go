package memory

import "strings"

// normalizeItem collapses whitespace and lowercases a bullet item so that
// similarity comparison ignores formatting drift.
func normalizeItem(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// similarityRatio returns a match ratio in [0, 1] between two normalized
// strings: twice the longest common subsequence length over the combined
// length. Paraphrase drift from LLM extraction keeps wording close but not
// identical, so exact-key dedup would miss most duplicates.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	// LCS length with a rolling row to keep allocation linear in len(b).
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
