package memory

import "testing"

func TestSimilarityRatio(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "user prefers dark mode", "user prefers dark mode", 1, 1},
		{"both empty", "", "", 1, 1},
		{"one empty", "something", "", 0, 0},
		{"near duplicate", "user prefers dark mode", "user prefers dark mode.", 0.9, 1},
		{"unrelated", "deploys happen on fridays", "the cat sat on the mat", 0, 0.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := similarityRatio(tc.a, tc.b)
			if got < tc.min || got > tc.max {
				t.Fatalf("similarityRatio(%q, %q) = %v, want within [%v, %v]", tc.a, tc.b, got, tc.min, tc.max)
			}
		})
	}
}

func TestSimilarityRatioIsSymmetric(t *testing.T) {
	a, b := "short", "a much longer sentence with many words"
	if similarityRatio(a, b) != similarityRatio(b, a) {
		t.Fatal("ratio is not symmetric")
	}
}

func TestNormalizeItem(t *testing.T) {
	got := normalizeItem("  User   PREFERS\ttabs  ")
	if got != "user prefers tabs" {
		t.Fatalf("normalizeItem = %q", got)
	}
}
