package tui

import (
	"fmt"
	"strings"
)

// renderFormPanel draws the active tab's form.
func renderFormPanel(m *Model, width, height int) string {
	var body string
	if m.activeTab == TabExamples {
		body = renderExampleForm(m, width-2)
	} else {
		body = renderCustomForm(m, width-2)
	}

	content := strings.Join([]string{
		body,
		"",
		renderAdvanced(m),
		"",
		renderSubmit(m),
	}, "\n")

	lines, _ := scrollLines(strings.Split(content, "\n"), 0, height-1)
	return renderPanel(strings.Join(lines, "\n"), true, width, height)
}

// formRow renders "Label  value" with the label highlighted when the
// control has focus.
func formRow(label string, focused bool, value string) string {
	style := labelStyle
	if focused {
		style = labelFocusedStyle
	}
	return fmt.Sprintf("%s  %s", style.Render(label), value)
}

// renderSelector shows a cycling choice as "‹ value ›".
func renderSelector(value string, focused bool) string {
	if focused {
		return selectorStyle.Render("‹ " + value + " ›")
	}
	return valueStyle.Render(value)
}

func renderToggle(label string, focused bool) string {
	if focused {
		return labelFocusedStyle.Render("▸ " + label)
	}
	return labelStyle.Render("▸ " + label)
}

// renderSubmit draws the Quadratize control.
func renderSubmit(m *Model) string {
	label := "Quadratize"
	if m.loading {
		label = "Quadratizing..."
	}
	switch {
	case !m.canSubmit():
		return buttonDisabledStyle.Render(label)
	case m.focus == fieldSubmit:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

// card renders a titled helper block.
func card(title, body string) string {
	return cardTitleStyle.Render(title) + "\n" + body
}
