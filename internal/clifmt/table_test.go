package clifmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrapTextRunes(t *testing.T) {
	lines := wrapTextRunes("alpha beta gamma delta", 11)
	want := []string{"alpha beta", "gamma delta"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapTextRunesLongWord(t *testing.T) {
	lines := wrapTextRunes("abcdefghij", 4)
	if len(lines) != 3 || lines[0] != "abcd" || lines[2] != "ij" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestTruncateCollapsesNewlines(t *testing.T) {
	got := Truncate("one\ntwo\nthree", 100)
	if got != "one two three" {
		t.Fatalf("got %q", got)
	}
	got = Truncate("abcdefghij", 8)
	if got != "abcde..." {
		t.Fatalf("got %q", got)
	}
}

func TestPrintNameDetailTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintNameDetailTable(&buf, NameDetailTableOptions{Title: "Tools"})
	if !strings.Contains(buf.String(), "No entries.") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestPrintNameDetailTableRows(t *testing.T) {
	var buf bytes.Buffer
	PrintNameDetailTable(&buf, NameDetailTableOptions{
		Title: "Tools",
		Rows: []NameDetailRow{
			{Name: "read_file", Detail: "Reads a text file."},
			{Name: "bash", Detail: "Runs a shell command."},
		},
	})
	out := buf.String()
	for _, want := range []string{"Tools (2)", "read_file", "bash", "Runs a shell command."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
