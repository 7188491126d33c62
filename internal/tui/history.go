package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/quadpde/pkg/timeutil"
	"github.com/charmbracelet/lipgloss"
)

// renderHistory lists this session's runs, newest first.
func renderHistory(m *Model, width, height int) string {
	if len(m.runs) == 0 {
		empty := emptyStateStyle.Render(
			"No runs yet.\n\n" +
				"Quadratize an example or a custom PDE,\n" +
				"then it will be listed here until you quit.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	title := panelTitleStyle.Render("Session history")
	count := runDimStyle.Render(fmt.Sprintf("  %d runs", len(m.runs)))

	lines := []string{title + count, ""}

	maxVisible := maxInt(height-3, 1)
	start := 0
	if m.selectedRun >= maxVisible {
		start = m.selectedRun - maxVisible + 1
	}
	end := minInt(len(m.runs), start+maxVisible)

	now := time.Now()
	for i := start; i < end; i++ {
		run := m.runs[i]

		var dot, detail string
		if run.Succeeded() {
			dot = runStatusOk.Render("●")
			detail = runDimStyle.Render(fmt.Sprintf("%d aux", len(run.Response.AuxVars)))
		} else {
			dot = runStatusFail.Render("●")
			detail = errorTextStyle.Render(truncate(firstLine(run.Error), 40))
		}

		meta := runDimStyle.Render(fmt.Sprintf("%-7s %s  %s  %s",
			run.Mode,
			timeutil.FormatClock(run.StartedAt),
			timeutil.RelativeTime(run.StartedAt, now),
			timeutil.FormatDuration(run.Duration())))

		label := truncate(run.Label, maxInt(10, width/3))
		content := fmt.Sprintf("%s  %s  %s  %s", dot, label, meta, detail)

		if i == m.selectedRun {
			lines = append(lines, itemSelectedStyle.Width(width-2).Render(content))
		} else {
			lines = append(lines, itemNormalStyle.Width(width-2).Render(content))
		}
	}

	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}
