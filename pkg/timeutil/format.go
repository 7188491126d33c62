// Package timeutil formats run timestamps and durations for the
// history view and CLI output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatClock formats t as "HH:MM:SS".
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatTimestampFull formats t with date.
// Format: "2006-01-02 15:04:05.000"
func FormatTimestampFull(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// FormatDuration formats d to a human-readable string.
// Examples: "450ms", "1.2s", "2m 15.3s"
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remaining := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}

// RelativeTime describes how long before now t happened.
// Examples: "just now", "5s ago", "2m ago", "1h ago"
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
