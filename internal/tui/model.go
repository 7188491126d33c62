package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
	"github.com/Mr-Dark-debug/quadpde/internal/history"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Backend is the remote service as seen by the UI. *api.Client
// satisfies it.
type Backend interface {
	FetchHealth(ctx context.Context) (string, error)
	FetchExamples(ctx context.Context) ([]api.ExampleSummary, error)
	FetchExampleDetail(ctx context.Context, id string) (*api.ExampleDetail, error)
	Quadratize(ctx context.Context, req api.QuadratizeRequest) (*api.QuadratizeResponse, error)
}

// ────────────────────────────────────────────────────────────
// Tabs and focus
// ────────────────────────────────────────────────────────────

// Tab is one of the two mutually exclusive input forms.
type Tab int

const (
	TabExamples Tab = iota
	TabCustom
)

const apiStatusChecking = "checking"

// field identifies a focusable control.
type field int

const (
	fieldExample field = iota
	fieldExampleDiffOrd
	fieldFormat
	fieldCustomDiffOrd
	fieldVars
	fieldFuncs
	fieldEquations
	fieldAdvancedToggle
	fieldSearchAlg
	fieldSortFun
	fieldMaxDerOrder
	fieldNVarsBound
	fieldShowNodes
	fieldSubmit
)

var advancedFields = []field{fieldSearchAlg, fieldSortFun, fieldMaxDerOrder, fieldNVarsBound, fieldShowNodes}

// focusOrder lists the controls reachable with tab on the active form.
func (m *Model) focusOrder() []field {
	var order []field
	if m.activeTab == TabExamples {
		order = []field{fieldExample, fieldExampleDiffOrd}
	} else {
		order = []field{fieldFormat, fieldCustomDiffOrd, fieldVars, fieldFuncs, fieldEquations}
	}
	order = append(order, fieldAdvancedToggle)
	if m.advancedOpen {
		order = append(order, advancedFields...)
	}
	return append(order, fieldSubmit)
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for QuadPDE. It owns all view
// state; rendering is delegated to component functions in separate
// files.
type Model struct {
	backend Backend
	history history.Store
	log     *slog.Logger

	// API status: "checking", then the server's status or "error".
	apiStatus string

	// Example catalog
	examples          []api.ExampleSummary
	selectedExampleID string
	selectedExample   *api.ExampleDetail
	examplesError     string
	exampleDiffOrd    int

	// Custom form
	customInputs  api.CustomInputs
	customDiffOrd int

	// Shared advanced options
	advanced     api.Options
	advancedOpen bool

	// Latest quadratization
	results    *api.QuadratizeResponse
	err        string
	loading    bool
	requestSeq uint64

	// Inputs
	exampleDiffInput textinput.Model
	customDiffInput  textinput.Model
	varsInput        textinput.Model
	funcsInput       textinput.Model
	equationsArea    textarea.Model
	maxDerInput      textinput.Model
	nvarsInput       textinput.Model

	// UI state
	activeTab     Tab
	focus         field
	resultsScroll int
	showHistory   bool
	runs          []*history.Run
	selectedRun   int
	width         int
	height        int

	// Status
	statusMsg string
}

// NewModel creates the UI over backend. store may be nil, which
// disables the history view.
func NewModel(backend Backend, store history.Store) Model {
	custom := api.DefaultCustomInputs()
	opts := api.DefaultOptions()

	m := Model{
		backend:        backend,
		history:        store,
		log:            slog.Default(),
		apiStatus:      apiStatusChecking,
		exampleDiffOrd: 2,
		customInputs:   custom,
		customDiffOrd:  2,
		advanced:       opts,
		statusMsg:      "Loading examples...",
	}

	m.exampleDiffInput = newNumberInput(m.exampleDiffOrd)
	m.customDiffInput = newNumberInput(m.customDiffOrd)
	m.maxDerInput = newNumberInput(opts.MaxDerOrder)
	m.nvarsInput = newNumberInput(opts.NVarsBound)

	m.varsInput = textinput.New()
	m.varsInput.Placeholder = "t,x"
	m.varsInput.Prompt = ""
	m.varsInput.SetValue(custom.Vars)

	m.funcsInput = textinput.New()
	m.funcsInput.Placeholder = "u,v"
	m.funcsInput.Prompt = ""
	m.funcsInput.SetValue(custom.Funcs)

	m.equationsArea = textarea.New()
	m.equationsArea.Placeholder = "Derivative(u(t,x), t) = Derivative(u(t,x),(x,2)) + u(t,x) - u(t,x)**3"
	m.equationsArea.ShowLineNumbers = false
	m.equationsArea.SetHeight(6)
	m.equationsArea.SetValue(custom.Equations)

	m.focus = fieldExample
	return m
}

func newNumberInput(v int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 12
	ti.Width = 8
	ti.SetValue(fmt.Sprintf("%d", v))
	return ti
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type healthMsg struct {
	status string
	err    error
}

type examplesLoadedMsg struct {
	examples []api.ExampleSummary
	err      error
}

type exampleDetailMsg struct {
	id     string
	detail *api.ExampleDetail
	err    error
}

// quadratizeDoneMsg carries the token the request was issued with so
// that superseded responses can be recognized.
type quadratizeDoneMsg struct {
	token    uint64
	req      api.QuadratizeRequest
	resp     *api.QuadratizeResponse
	err      error
	started  time.Time
	finished time.Time
}

type historyLoadedMsg struct {
	runs []*history.Run
	err  error
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), m.loadExamples())
}

func (m Model) checkHealth() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		status, err := backend.FetchHealth(context.Background())
		return healthMsg{status: status, err: err}
	}
}

func (m Model) loadExamples() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		examples, err := backend.FetchExamples(context.Background())
		return examplesLoadedMsg{examples: examples, err: err}
	}
}

func (m Model) loadExampleDetail(id string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		detail, err := backend.FetchExampleDetail(context.Background(), id)
		return exampleDetailMsg{id: id, detail: detail, err: err}
	}
}

func (m Model) quadratize(token uint64, req api.QuadratizeRequest) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		started := time.Now()
		resp, err := backend.Quadratize(context.Background(), req)
		return quadratizeDoneMsg{
			token: token, req: req, resp: resp, err: err,
			started: started, finished: time.Now(),
		}
	}
}

// recordRun stores a finished request and reloads the history list.
func (m Model) recordRun(msg quadratizeDoneMsg) tea.Cmd {
	store := m.history
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		run, err := history.NewRun(msg.req, msg.resp, msg.err, msg.started, msg.finished)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		if err := store.Record(run); err != nil {
			return historyLoadedMsg{err: err}
		}
		runs, err := store.List(100)
		return historyLoadedMsg{runs: runs, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	store := m.history
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		runs, err := store.List(100)
		return historyLoadedMsg{runs: runs, err: err}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthMsg:
		if msg.err != nil {
			m.log.Warn("health check failed", "error", msg.err)
			m.apiStatus = "error"
		} else {
			m.apiStatus = msg.status
		}
		return m, nil

	case examplesLoadedMsg:
		if msg.err != nil {
			m.examplesError = msg.err.Error()
			m.statusMsg = "Examples unavailable"
			return m, nil
		}
		m.examples = msg.examples
		m.examplesError = ""
		m.statusMsg = fmt.Sprintf("%d examples", len(m.examples))
		if m.selectedExampleID == "" && len(m.examples) > 0 {
			return m.selectExample(m.examples[0].ID)
		}
		return m, nil

	case exampleDetailMsg:
		if msg.id != m.selectedExampleID {
			return m, nil
		}
		if msg.err != nil {
			m.examplesError = msg.err.Error()
			return m, nil
		}
		m.examplesError = ""
		m.selectedExample = msg.detail
		m.setExampleDiffOrd(msg.detail.DiffOrd)
		return m, nil

	case quadratizeDoneMsg:
		record := m.recordRun(msg)
		if msg.token != m.requestSeq {
			m.log.Debug("dropping superseded result", "token", msg.token, "latest", m.requestSeq)
			return m, record
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			m.statusMsg = "Quadratization failed"
		} else {
			m.results = msg.resp
			m.err = ""
			m.resultsScroll = 0
			m.statusMsg = fmt.Sprintf("Done in %s", msg.finished.Sub(msg.started).Round(time.Millisecond))
		}
		return m, record

	case historyLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("History error: %v", msg.err)
			return m, nil
		}
		m.runs = msg.runs
		if m.selectedRun >= len(m.runs) {
			m.selectedRun = maxInt(0, len(m.runs)-1)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// selectExample makes id the current example and fetches its detail.
func (m Model) selectExample(id string) (Model, tea.Cmd) {
	if id == m.selectedExampleID {
		return m, nil
	}
	m.selectedExampleID = id
	m.selectedExample = nil
	if id == "" {
		return m, nil
	}
	return m, m.loadExampleDetail(id)
}

func (m *Model) setExampleDiffOrd(v int) {
	m.exampleDiffOrd = v
	m.exampleDiffInput.SetValue(fmt.Sprintf("%d", v))
}

func (m Model) selectedExampleIndex() int {
	for i, ex := range m.examples {
		if ex.ID == m.selectedExampleID {
			return i
		}
	}
	return -1
}

// ────────────────────────────────────────────────────────────
// Submission
// ────────────────────────────────────────────────────────────

// handleQuadratizeExample submits the selected catalog example.
func (m Model) handleQuadratizeExample() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	req, err := api.NewExampleRequest(m.selectedExampleID, m.exampleDiffOrd, m.advanced)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	return m.submit(req)
}

// handleQuadratizeCustom submits the custom PDE form.
func (m Model) handleQuadratizeCustom() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	req, err := api.NewCustomRequest(m.customInputs, m.customDiffOrd, m.advanced)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	return m.submit(req)
}

// submit issues req under a fresh token. Only the response carrying
// the latest token is applied.
func (m Model) submit(req api.QuadratizeRequest) (Model, tea.Cmd) {
	m.requestSeq++
	m.loading = true
	m.err = ""
	m.statusMsg = "Quadratizing..."
	return m, m.quadratize(m.requestSeq, req)
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.activeTab == TabExamples {
		return m.handleQuadratizeExample()
	}
	return m.handleQuadratizeCustom()
}

// canSubmit reports whether the submit control is enabled.
func (m *Model) canSubmit() bool {
	if m.loading {
		return false
	}
	if m.activeTab == TabExamples {
		return m.selectedExampleID != ""
	}
	return true
}

// ────────────────────────────────────────────────────────────
// Keys
// ────────────────────────────────────────────────────────────

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Global ──

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+o":
		if m.history == nil {
			return m, nil
		}
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.loadHistory()
		}
		return m, nil
	}

	if m.showHistory {
		return m.handleHistoryKey(key)
	}

	switch key {
	case "ctrl+t":
		if m.activeTab == TabExamples {
			m.activeTab = TabCustom
		} else {
			m.activeTab = TabExamples
		}
		cmd := m.setFocus(m.focusOrder()[0])
		return m, cmd
	case "ctrl+a":
		cmd := m.toggleAdvanced()
		return m, cmd
	case "ctrl+r":
		return m.handleSubmit()
	case "tab":
		cmd := m.moveFocus(1)
		return m, cmd
	case "shift+tab":
		cmd := m.moveFocus(-1)
		return m, cmd
	case "pgdown":
		m.resultsScroll = minInt(m.resultsScroll+maxInt(1, m.bodyHeight()/2), m.maxResultsScroll())
		return m, nil
	case "pgup":
		m.resultsScroll = maxInt(0, m.resultsScroll-maxInt(1, m.bodyHeight()/2))
		return m, nil
	}

	// ── Focused control ──

	switch m.focus {
	case fieldExample:
		switch key {
		case "q":
			return m, tea.Quit
		case "j", "down":
			return m.moveExampleSelection(1)
		case "k", "up":
			return m.moveExampleSelection(-1)
		case "enter":
			cmd := m.moveFocus(1)
			return m, cmd
		}
		return m, nil

	case fieldFormat, fieldSearchAlg, fieldSortFun:
		switch key {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.cycleSelector(m.focus, -1)
		case "right", "l", " ", "enter":
			m.cycleSelector(m.focus, 1)
		case "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "down":
			cmd := m.moveFocus(1)
			return m, cmd
		}
		return m, nil

	case fieldShowNodes:
		switch key {
		case "q":
			return m, tea.Quit
		case " ", "enter", "x":
			m.advanced = toggleShowNodes(m.advanced)
		case "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "down":
			cmd := m.moveFocus(1)
			return m, cmd
		}
		return m, nil

	case fieldAdvancedToggle:
		switch key {
		case "q":
			return m, tea.Quit
		case " ", "enter":
			cmd := m.toggleAdvanced()
			return m, cmd
		case "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "down":
			cmd := m.moveFocus(1)
			return m, cmd
		}
		return m, nil

	case fieldSubmit:
		switch key {
		case "q":
			return m, tea.Quit
		case "enter", " ":
			return m.handleSubmit()
		case "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		}
		return m, nil

	case fieldEquations:
		// enter inserts a newline
		return m.updateFocusedInput(msg)
	}

	// Single-line text inputs
	if key == "enter" || key == "down" {
		cmd := m.moveFocus(1)
		return m, cmd
	}
	if key == "up" {
		cmd := m.moveFocus(-1)
		return m, cmd
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "esc":
		m.showHistory = false
	case "j", "down":
		if m.selectedRun < len(m.runs)-1 {
			m.selectedRun++
		}
	case "k", "up":
		if m.selectedRun > 0 {
			m.selectedRun--
		}
	case "enter":
		if m.selectedRun < len(m.runs) {
			m.restoreRun(m.runs[m.selectedRun])
			m.showHistory = false
		}
	}
	return m, nil
}

// restoreRun shows a past successful run in the results panel. It
// does not touch the request token, so a pending response still lands.
func (m *Model) restoreRun(run *history.Run) {
	if !run.Succeeded() {
		m.statusMsg = fmt.Sprintf("Run %s failed: %s", shortID(run.ID, 8), firstLine(run.Error))
		return
	}
	m.results = run.Response
	m.err = ""
	m.resultsScroll = 0
	m.statusMsg = fmt.Sprintf("Showing run %s", shortID(run.ID, 8))
}

func (m Model) moveExampleSelection(delta int) (Model, tea.Cmd) {
	if len(m.examples) == 0 {
		return m, nil
	}
	idx := clamp(m.selectedExampleIndex()+delta, 0, len(m.examples)-1)
	return m.selectExample(m.examples[idx].ID)
}

func (m *Model) cycleSelector(f field, step int) {
	switch f {
	case fieldFormat:
		if step > 0 {
			m.customInputs.Format = m.customInputs.Format.Next()
		} else {
			m.customInputs.Format = m.customInputs.Format.Prev()
		}
	case fieldSearchAlg, fieldSortFun:
		m.advanced = cycleOption(m.advanced, f, step)
	}
}

func (m *Model) toggleAdvanced() tea.Cmd {
	m.advancedOpen = !m.advancedOpen
	if !m.advancedOpen {
		for _, f := range advancedFields {
			if m.focus == f {
				return m.setFocus(fieldAdvancedToggle)
			}
		}
	}
	return nil
}

// moveFocus steps through focusOrder, wrapping around.
func (m *Model) moveFocus(step int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	n := len(order)
	return m.setFocus(order[((idx+step)%n+n)%n])
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.exampleDiffInput.Blur()
	m.customDiffInput.Blur()
	m.varsInput.Blur()
	m.funcsInput.Blur()
	m.equationsArea.Blur()
	m.maxDerInput.Blur()
	m.nvarsInput.Blur()

	switch f {
	case fieldExampleDiffOrd:
		return m.exampleDiffInput.Focus()
	case fieldCustomDiffOrd:
		return m.customDiffInput.Focus()
	case fieldVars:
		return m.varsInput.Focus()
	case fieldFuncs:
		return m.funcsInput.Focus()
	case fieldEquations:
		return m.equationsArea.Focus()
	case fieldMaxDerOrder:
		return m.maxDerInput.Focus()
	case fieldNVarsBound:
		return m.nvarsInput.Focus()
	}
	return nil
}

// updateFocusedInput forwards msg to the focused text control and
// writes its value back into the model state.
func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldExampleDiffOrd:
		m.exampleDiffInput, cmd = m.exampleDiffInput.Update(msg)
		m.exampleDiffOrd = coerceNumber(m.exampleDiffInput.Value())
	case fieldCustomDiffOrd:
		m.customDiffInput, cmd = m.customDiffInput.Update(msg)
		m.customDiffOrd = coerceNumber(m.customDiffInput.Value())
	case fieldVars:
		m.varsInput, cmd = m.varsInput.Update(msg)
		m.customInputs.Vars = m.varsInput.Value()
	case fieldFuncs:
		m.funcsInput, cmd = m.funcsInput.Update(msg)
		m.customInputs.Funcs = m.funcsInput.Value()
	case fieldEquations:
		m.equationsArea, cmd = m.equationsArea.Update(msg)
		m.customInputs.Equations = m.equationsArea.Value()
	case fieldMaxDerOrder:
		m.maxDerInput, cmd = m.maxDerInput.Update(msg)
		m.advanced = applyOption(m.advanced, fieldMaxDerOrder, m.maxDerInput.Value())
	case fieldNVarsBound:
		m.nvarsInput, cmd = m.nvarsInput.Update(msg)
		m.advanced = applyOption(m.advanced, fieldNVarsBound, m.nvarsInput.Value())
	}
	return m, cmd
}

func (m *Model) resizeInputs() {
	formWidth := m.formWidth() - 6
	if formWidth < 10 {
		formWidth = 10
	}
	m.varsInput.Width = formWidth
	m.funcsInput.Width = formWidth
	m.equationsArea.SetWidth(formWidth)
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	tabs := renderTabs(&m)
	footer := renderFooter(&m)

	var body string
	if m.showHistory {
		body = renderHistory(&m, m.width, m.bodyHeight())
	} else {
		body = m.renderWorkspace(m.bodyHeight())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, footer)
}

// maxResultsScroll is the largest useful scroll offset for the
// current results content.
func (m *Model) maxResultsScroll() int {
	width := m.width - m.formWidth()
	height := m.bodyHeight()
	if m.width < 90 {
		width = m.width
		height -= height * 60 / 100
	}
	content := renderResults(m.results, m.err, m.loading, width-4)
	return maxInt(0, strings.Count(content, "\n")+1-(height-1))
}

// bodyHeight is the space between the tab bar and the footer.
func (m *Model) bodyHeight() int {
	return maxInt(m.height-3, 5)
}

func (m *Model) formWidth() int {
	if m.width < 90 {
		return m.width
	}
	return m.width * 50 / 100
}

// renderWorkspace places the active form beside the results panel, or
// stacks them on narrow terminals.
func (m Model) renderWorkspace(totalHeight int) string {
	if m.width < 90 {
		formHeight := totalHeight * 60 / 100
		form := renderFormPanel(&m, m.width, formHeight)
		results := renderResultsPanel(&m, m.width, totalHeight-formHeight)
		return lipgloss.JoinVertical(lipgloss.Left, form, results)
	}

	leftWidth := m.formWidth()
	form := renderFormPanel(&m, leftWidth, totalHeight)
	results := renderResultsPanel(&m, m.width-leftWidth, totalHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, form, results)
}
