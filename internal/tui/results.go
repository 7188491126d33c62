package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
	"github.com/Mr-Dark-debug/quadpde/internal/latex"
)

// renderResults draws the results card. It depends only on its
// arguments: loading wins over an error, an error wins over results.
func renderResults(resp *api.QuadratizeResponse, errMsg string, loading bool, width int) string {
	switch {
	case loading:
		return resultsLoadingTitleStyle.Render("Quadratizing…") + "\n" +
			mutedStyle.Render(wrapText("Searching for a quadratic system. This can take a moment.", width))
	case errMsg != "":
		return resultsErrorTitleStyle.Render("Quadratization failed") + "\n" +
			errorTextStyle.Render(wrapText(errMsg, width))
	case resp == nil:
		return resultsTitleStyle.Render("Results") + "\n" +
			mutedStyle.Render(wrapText("Run an example or custom PDE to see the quadratic system.", width))
	}

	lines := []string{
		resultsTitleStyle.Render("Quadratization Results"),
		resultsMetaStyle.Render(resultsMeta(resp)),
	}
	for _, sec := range resp.Sections() {
		lines = append(lines, "", sectionStyle.Render(sec.Title), renderEntries(sec.Entries, width))
	}
	return strings.Join(lines, "\n")
}

func resultsMeta(resp *api.QuadratizeResponse) string {
	parts := []string{
		fmt.Sprintf("Aux vars: %d", len(resp.AuxVars)),
		fmt.Sprintf("Frac vars: %d", len(resp.FracVars)),
		fmt.Sprintf("Quad sys size: %d", len(resp.QuadSys)),
	}
	if resp.Traversed != nil {
		parts = append(parts, fmt.Sprintf("Nodes: %d", *resp.Traversed))
	}
	return strings.Join(parts, "   ")
}

func renderEntries(entries []string, width int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No entries.")
	}
	lines := make([]string, 0, len(entries))
	for _, item := range entries {
		lines = append(lines, equationStyle.Render(wrapText(latex.Render(item, false), width)))
	}
	return strings.Join(lines, "\n")
}

// renderResultsPanel draws the scrollable results pane.
func renderResultsPanel(m *Model, width, height int) string {
	content := renderResults(m.results, m.err, m.loading, width-4)
	all := strings.Split(content, "\n")

	visible, offset := scrollLines(all, m.resultsScroll, height-1)
	if len(all) > height-1 && height > 2 {
		visible, _ = scrollLines(all, offset, height-2)
		more := fmt.Sprintf("%d-%d of %d lines  pgup/pgdn", offset+1, offset+len(visible), len(all))
		visible = append(visible, hintStyle.Render(more))
	}
	return renderPanel(strings.Join(visible, "\n"), false, width, height)
}
