package clifmt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	defaultTableWidth     = 100
	defaultMinDetailWidth = 36
)

type NameDetailRow struct {
	Name   string
	Detail string
}

type NameDetailTableOptions struct {
	Title string
	Rows  []NameDetailRow
}

// PrintNameDetailTable renders an indexed name/detail table, wrapping
// the detail column to the terminal width when out is a TTY.
func PrintNameDetailTable(out io.Writer, opts NameDetailTableOptions) {
	if out == nil {
		out = os.Stdout
	}

	if title := strings.TrimSpace(opts.Title); title != "" {
		fmt.Fprintln(out, Headerf("%s (%d)", title, len(opts.Rows)))
	}
	if len(opts.Rows) == 0 {
		fmt.Fprintln(out, Warn("No entries."))
		return
	}

	indexWidth := utf8.RuneCountInString(strconv.Itoa(len(opts.Rows) - 1))
	if indexWidth < 1 {
		indexWidth = 1
	}
	nameWidth := utf8.RuneCountInString("NAME")
	for _, row := range opts.Rows {
		if w := utf8.RuneCountInString(row.Name); w > nameWidth {
			nameWidth = w
		}
	}
	detailWidth := tableDetailWidth(out, indexWidth, nameWidth)

	fmt.Fprintf(out, "%s  %s  %s\n", Key(padRightRunes("#", indexWidth)), Key(padRightRunes("NAME", nameWidth)), Key("DETAILS"))
	fmt.Fprintf(out, "%s  %s  %s\n", Dim(strings.Repeat("-", indexWidth)), Dim(strings.Repeat("-", nameWidth)), Dim(strings.Repeat("-", detailWidth)))

	for i, row := range opts.Rows {
		detail := strings.TrimSpace(row.Detail)
		if detail == "" {
			detail = "No details provided."
		}
		lines := wrapTextRunes(detail, detailWidth)
		fmt.Fprintf(out, "%s  %s  %s\n", Dim(padRightRunes(strconv.Itoa(i), indexWidth)), Success(padRightRunes(row.Name, nameWidth)), lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(out, "%s  %s  %s\n", strings.Repeat(" ", indexWidth), strings.Repeat(" ", nameWidth), line)
		}
	}
}

func tableDetailWidth(out io.Writer, indexWidth, nameWidth int) int {
	width := defaultTableWidth
	if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		if terminalWidth, _, err := term.GetSize(int(file.Fd())); err == nil && terminalWidth > 0 {
			width = terminalWidth
		}
	}
	detailWidth := width - indexWidth - nameWidth - 4
	if detailWidth < defaultMinDetailWidth {
		detailWidth = defaultMinDetailWidth
	}
	return detailWidth
}

func padRightRunes(s string, width int) string {
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 {
		return s
	}
	return s + strings.Repeat(" ", missing)
}

func wrapTextRunes(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	lines := make([]string, 0, len(words))
	current := ""

	flush := func() {
		if current == "" {
			return
		}
		lines = append(lines, current)
		current = ""
	}

	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			flush()
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			flush()
			current = word
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
