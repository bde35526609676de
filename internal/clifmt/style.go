package clifmt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

func Headerf(format string, args ...any) string {
	return headerStyle.Render(fmt.Sprintf(format, args...))
}

func Key(s string) string { return keyStyle.Render(s) }

func Dim(s string) string { return dimStyle.Render(s) }

func Success(s string) string { return successStyle.Render(s) }

func Warn(s string) string { return warnStyle.Render(s) }

func Errorf(format string, args ...any) string {
	return errorStyle.Render(fmt.Sprintf(format, args...))
}

// ToolCallLine renders a one-line preview of an outgoing tool call.
func ToolCallLine(name, arguments string) string {
	args := strings.TrimSpace(arguments)
	if args == "{}" {
		args = ""
	}
	return toolStyle.Render("→ "+name) + " " + Dim(Truncate(args, 120))
}

// ToolResultLine renders a one-line preview of a tool result.
func ToolResultLine(name, result string) string {
	preview := Truncate(strings.TrimSpace(result), 120)
	if strings.HasPrefix(result, "error: ") {
		return Dim("← "+name+" ") + Warn(preview)
	}
	return Dim("← " + name + " " + preview)
}

// Truncate keeps s to at most max runes, appending an ellipsis when
// anything was cut. Newlines collapse to spaces so previews stay on
// one line.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
