// Package util holds the column helpers shared by the CLI and TUI renderers.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks text cut short by Truncate.
const Ellipsis = "…"

// Truncate shortens s to at most width visual columns, ending it with an
// ellipsis when anything was cut. Escape sequences and wide characters are
// measured the way the terminal draws them.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// Pad right-pads s with spaces to width visual columns. Strings already at
// least width wide are returned unchanged.
func Pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Fit truncates then pads s so it fills exactly width columns.
func Fit(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// TextWidth returns the width left for the text column of a row in a
// terminal termWidth columns wide, after reserved columns for the other
// fields. The result is capped at maxWidth, and never drops below minWidth
// even if the row then overflows. A termWidth of zero or less means the
// width is unknown and maxWidth is used.
func TextWidth(termWidth, reserved, minWidth, maxWidth int) int {
	if termWidth <= 0 {
		return maxWidth
	}
	return max(minWidth, min(maxWidth, termWidth-reserved))
}
