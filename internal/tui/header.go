package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	QuadratizePDE  |  Run a curated PDE example...        API healthy
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("QuadratizePDE")
	sep := headerSepStyle.Render(" │ ")
	left := brand + sep + headerMetaStyle.Render(tabSubtitle(m.activeTab))
	right := headerMetaStyle.Render("API ") + apiBadge(m.apiStatus)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Drop the subtitle before the badge.
		left = brand
		gap = maxInt(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	}
	return headerBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func tabSubtitle(t Tab) string {
	if t == TabExamples {
		return "Run a curated PDE example and tweak the differentiation order."
	}
	return "Paste your own PDEs in SymPy or Mathematica syntax."
}

// apiBadge colors the health status: the server's own value is shown
// verbatim.
func apiBadge(status string) string {
	switch status {
	case "healthy":
		return apiHealthyStyle.Render(status)
	case apiStatusChecking:
		return apiCheckingStyle.Render(status)
	default:
		return apiErrorStyle.Render(status)
	}
}

// renderTabs draws the tab strip with the catalog error, if any.
func renderTabs(m *Model) string {
	tab := func(label string, active bool) string {
		if active {
			return tabActiveStyle.Render(label)
		}
		return tabInactiveStyle.Render(label)
	}
	line := tab("Examples", m.activeTab == TabExamples && !m.showHistory) +
		tab("Custom PDE", m.activeTab == TabCustom && !m.showHistory)
	if m.history != nil {
		line += tab("History", m.showHistory)
	}
	if m.examplesError != "" {
		line += " " + inlineAlertStyle.Render(truncate(m.examplesError, maxInt(0, m.width-lipgloss.Width(line)-3)))
	}
	return line
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	if m.statusMsg != "" {
		left = statusStyle.Render(m.statusMsg)
	}

	if m.showHistory {
		right = renderHints([]hint{
			{"↑↓", "navigate"},
			{"enter", "restore"},
			{"esc", "back"},
			{"q", "quit"},
		})
	} else {
		right = renderHints([]hint{
			{"tab", "field"},
			{"ctrl+t", "tab"},
			{"ctrl+a", "advanced"},
			{"ctrl+r", "run"},
			{"ctrl+o", "history"},
			{"ctrl+c", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		MaxWidth(m.width).
		Width(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
