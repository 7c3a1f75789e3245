package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts s to maxWidth columns, ending in "…" when anything was
// removed. Escape codes do not count toward the width and are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to width columns. Wider strings are returned
// unchanged.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// OneLine folds a multi-line string onto a single row, marking each
// dropped line break with "↵".
func OneLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Join(strings.Split(s, "\n"), " ↵ ")
}
