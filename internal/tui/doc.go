// Package tui implements the QuadPDE terminal user interface.
//
// Built with Charmbracelet's BubbleTea, Lipgloss, and Bubbles
// libraries. All network calls run as tea.Cmd functions and report
// back through typed messages; Update is the only place state changes.
//
// Component architecture:
//
//	model.go    root model, message routing, request token guard
//	theme.go    centralized color and style definitions
//	header.go   top bar with API status, tab strip, footer hints
//	form.go     form panel chrome, rows, selectors, submit control
//	examples.go catalog selector, description, equation preview
//	custom.go   free-form PDE inputs
//	advanced.go collapsible search options
//	results.go  results card and scrollable pane
//	history.go  session run list
//	helpers.go  panels, scrolling, truncation
package tui
