package tui

import "strings"

// renderCustomForm draws the free-form PDE inputs.
func renderCustomForm(m *Model, width int) string {
	lines := []string{
		formRow("Format", m.focus == fieldFormat,
			renderSelector(m.customInputs.Format.Label(), m.focus == fieldFormat)),
		formRow("Differentiation Order", m.focus == fieldCustomDiffOrd, m.customDiffInput.View()),
		formRow("Independent Variables", m.focus == fieldVars, ""),
		"  " + m.varsInput.View(),
		formRow("Functions", m.focus == fieldFuncs, ""),
		"  " + m.funcsInput.View(),
		formRow("Equations", m.focus == fieldEquations, ""),
		m.equationsArea.View(),
		hintStyle.Render(truncate("Separate multiple equations with new lines.", width)),
	}
	return strings.Join(lines, "\n")
}
