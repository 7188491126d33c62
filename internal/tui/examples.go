package tui

import (
	"strings"

	"github.com/Mr-Dark-debug/quadpde/internal/latex"
)

// exampleListRows is how many catalog entries are visible at once.
const exampleListRows = 6

// renderExampleForm draws the catalog selector, the differentiation
// order field and the selected example's description and equations.
func renderExampleForm(m *Model, width int) string {
	focused := m.focus == fieldExample
	lines := []string{formRow("Example", focused, "")}
	lines = append(lines, renderExampleList(m, width)...)
	lines = append(lines,
		"",
		formRow("Differentiation Order", m.focus == fieldExampleDiffOrd, m.exampleDiffInput.View()),
		"",
		card("Description", wrapText(exampleDescription(m), width)),
		"",
		card("Equations Preview", renderEquationsPreview(m, width)),
	)
	return strings.Join(lines, "\n")
}

func renderExampleList(m *Model, width int) []string {
	if len(m.examples) == 0 {
		return []string{hintStyle.Render("  Select an example")}
	}

	selected := m.selectedExampleIndex()
	start := 0
	if selected >= exampleListRows {
		start = selected - exampleListRows + 1
	}
	end := minInt(len(m.examples), start+exampleListRows)

	var lines []string
	for i := start; i < end; i++ {
		name := truncate(m.examples[i].Name, width-4)
		if i == selected {
			lines = append(lines, itemSelectedStyle.Width(width-2).Render(name))
		} else {
			lines = append(lines, itemNormalStyle.Render(name))
		}
	}
	if selected < 0 {
		lines = append([]string{hintStyle.Render("  Select an example")}, lines...)
	}
	return lines
}

func exampleDescription(m *Model) string {
	if m.selectedExample != nil && m.selectedExample.Description != "" {
		return valueStyle.Render(m.selectedExample.Description)
	}
	return mutedStyle.Render("Select an example to see details.")
}

func renderEquationsPreview(m *Model, width int) string {
	if m.selectedExample == nil || len(m.selectedExample.EquationsLatex) == 0 {
		return mutedStyle.Render("No equations available.")
	}
	var lines []string
	for _, eq := range m.selectedExample.EquationsLatex {
		lines = append(lines, equationStyle.Render(wrapText(latex.Render(eq, false), width)))
	}
	return strings.Join(lines, "\n")
}
