package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Panel rendering
// ────────────────────────────────────────────────────────────

// renderPanel wraps content in the panel chrome, highlighted when
// active. height includes the top border line.
func renderPanel(content string, active bool, width, height int) string {
	style := panelStyle
	if active {
		style = panelActiveStyle
	}
	return style.Width(width).Height(maxInt(height-1, 1)).Render(content)
}

// scrollLines returns the window of lines starting at offset that
// fits in height. offset is clamped so the last page stays full.
func scrollLines(lines []string, offset, height int) ([]string, int) {
	if height <= 0 {
		return nil, 0
	}
	maxOffset := maxInt(0, len(lines)-height)
	offset = clamp(offset, 0, maxOffset)
	end := minInt(len(lines), offset+height)
	return lines[offset:end], offset
}

// wrapText breaks s into lines no wider than width, on spaces where
// possible.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// firstLine returns s up to its first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// shortID returns first n characters of an ID string.
func shortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// max returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// min returns the smaller of a and b.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
