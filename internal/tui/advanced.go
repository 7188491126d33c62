package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
)

// coerceNumber converts numeric field text to an int. Text that is
// not a finite number yields 0; fractions are truncated. No range is
// enforced.
func coerceNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// applyOption returns value with field set from raw. Every edit yields
// a complete Options value. Unknown selector values leave the field
// unchanged.
func applyOption(value api.Options, f field, raw string) api.Options {
	switch f {
	case fieldSearchAlg:
		if alg := api.SearchAlg(raw); alg.Valid() {
			value.SearchAlg = alg
		}
	case fieldSortFun:
		if fn := api.SortFun(raw); fn.Valid() {
			value.SortFun = fn
		}
	case fieldMaxDerOrder:
		value.MaxDerOrder = coerceNumber(raw)
	case fieldNVarsBound:
		value.NVarsBound = coerceNumber(raw)
	case fieldShowNodes:
		value.ShowNodes = raw == "true"
	}
	return value
}

// cycleOption moves a selector field one step forward or back.
func cycleOption(value api.Options, f field, step int) api.Options {
	switch f {
	case fieldSearchAlg:
		next := value.SearchAlg.Next()
		if step < 0 {
			next = value.SearchAlg.Prev()
		}
		return applyOption(value, f, string(next))
	case fieldSortFun:
		next := value.SortFun.Next()
		if step < 0 {
			next = value.SortFun.Prev()
		}
		return applyOption(value, f, string(next))
	}
	return value
}

func toggleShowNodes(value api.Options) api.Options {
	return applyOption(value, fieldShowNodes, strconv.FormatBool(!value.ShowNodes))
}

// renderAdvanced draws the collapsible options block shared by both
// tabs.
func renderAdvanced(m *Model) string {
	toggle := "Show advanced options"
	if m.advancedOpen {
		toggle = "Hide advanced options"
	}
	lines := []string{renderToggle(toggle, m.focus == fieldAdvancedToggle)}
	if !m.advancedOpen {
		return strings.Join(lines, "\n")
	}

	opts := m.advanced
	lines = append(lines,
		formRow("Search Algorithm", m.focus == fieldSearchAlg,
			renderSelector(string(opts.SearchAlg), m.focus == fieldSearchAlg)),
		formRow("Sort Function", m.focus == fieldSortFun,
			renderSelector(string(opts.SortFun), m.focus == fieldSortFun)),
		formRow("Max Derivative Order", m.focus == fieldMaxDerOrder, m.maxDerInput.View()),
		formRow("Nvars Bound", m.focus == fieldNVarsBound, m.nvarsInput.View()),
		renderCheckbox("Show traversed nodes", opts.ShowNodes, m.focus == fieldShowNodes),
	)
	return strings.Join(lines, "\n")
}

func renderCheckbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	style := labelStyle
	if focused {
		style = labelFocusedStyle
	}
	return fmt.Sprintf("%s %s", selectorStyle.Render(box), style.Render(label))
}
