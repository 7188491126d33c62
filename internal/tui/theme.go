package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette (GitHub Dark)
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	apiHealthyStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	apiErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	apiCheckingStyle = lipgloss.NewStyle().
				Foreground(colorYellow)
)

// Tabs
var (
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorHighlight).
			Bold(true).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Padding(0, 2)

	inlineAlertStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Padding(0, 2)
)

// Panel chrome
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)
)

// Form fields
var (
	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)

	itemNormalStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	itemSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true).
				Padding(0, 1)

	selectorStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorBg).
			Background(colorBlue).
			Bold(true).
			Padding(0, 2)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(colorBg).
				Background(colorGreen).
				Bold(true).
				Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Background(colorBgSurface).
				Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)
)

// Results
var (
	resultsTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	resultsErrorTitleStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	resultsLoadingTitleStyle = lipgloss.NewStyle().
					Foreground(colorYellow).
					Bold(true)

	resultsMetaStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	equationStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// History list
var (
	runStatusOk = lipgloss.NewStyle().
			Foreground(colorGreen)

	runStatusFail = lipgloss.NewStyle().
			Foreground(colorRed)

	runDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(2, 4)
)
