package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
	"github.com/Mr-Dark-debug/quadpde/internal/history"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	health      string
	healthErr   error
	examples    []api.ExampleSummary
	examplesErr error
	details     map[string]*api.ExampleDetail
	resp        *api.QuadratizeResponse
	quadErr     error
	requests    []api.QuadratizeRequest
}

func (f *fakeBackend) FetchHealth(context.Context) (string, error) {
	return f.health, f.healthErr
}

func (f *fakeBackend) FetchExamples(context.Context) ([]api.ExampleSummary, error) {
	return f.examples, f.examplesErr
}

func (f *fakeBackend) FetchExampleDetail(_ context.Context, id string) (*api.ExampleDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, &api.APIError{StatusCode: 404, Message: "Example not found"}
	}
	return d, nil
}

func (f *fakeBackend) Quadratize(_ context.Context, req api.QuadratizeRequest) (*api.QuadratizeResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.resp, f.quadErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		health: "healthy",
		examples: []api.ExampleSummary{
			{ID: "heat-eq", Name: "Heat equation", DiffOrd: 2},
			{ID: "burgers", Name: "Burgers", DiffOrd: 2},
		},
		details: map[string]*api.ExampleDetail{
			"heat-eq": {
				ExampleSummary: api.ExampleSummary{
					ID: "heat-eq", Name: "Heat equation", DiffOrd: 3,
					Description:    "Cubic heat equation",
					EquationsLatex: []string{`\frac{\partial}{\partial t} u = u^{3}`},
				},
			},
			"burgers": {ExampleSummary: api.ExampleSummary{ID: "burgers", Name: "Burgers", DiffOrd: 4}},
		},
		resp: &api.QuadratizeResponse{AuxVars: []string{"w"}, QuadSys: []string{"u' = w"}},
	}
}

// update feeds msg to m and returns the concrete model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

// run executes cmd synchronously, flattening batches.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds cmd's messages back into m until no commands remain.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		m, next = update(t, m, msg)
		queue = append(queue, run(next)...)
	}
	return m
}

func TestInitLoadsHealthAndCatalog(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)
	assert.Equal(t, "checking", m.apiStatus)

	m = settle(t, m, m.Init())

	assert.Equal(t, "healthy", m.apiStatus)
	require.Len(t, m.examples, 2)
	assert.Equal(t, "heat-eq", m.selectedExampleID)
	require.NotNil(t, m.selectedExample)
	assert.Empty(t, m.examplesError)
}

func TestSelectedDetailSeedsDiffOrd(t *testing.T) {
	fb := newFakeBackend()
	m := settle(t, NewModel(fb, nil), NewModel(fb, nil).Init())

	assert.Equal(t, 3, m.exampleDiffOrd)
	assert.Equal(t, "3", m.exampleDiffInput.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, "burgers", m.selectedExampleID)
	assert.Equal(t, 4, m.exampleDiffOrd)
}

func TestStaleDetailDropped(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	m.selectedExampleID = "burgers"
	m.exampleDiffOrd = 2

	m, _ = update(t, m, exampleDetailMsg{
		id:     "heat-eq",
		detail: &api.ExampleDetail{ExampleSummary: api.ExampleSummary{ID: "heat-eq", DiffOrd: 5}},
	})
	assert.Equal(t, 2, m.exampleDiffOrd)
	assert.Nil(t, m.selectedExample)
}

func TestDetailErrorClearedBySuccessfulSelection(t *testing.T) {
	fb := newFakeBackend()
	fb.examples = append([]api.ExampleSummary{{ID: "gone", Name: "Removed"}}, fb.examples...)
	m := settle(t, NewModel(fb, nil), NewModel(fb, nil).Init())

	assert.Equal(t, "gone", m.selectedExampleID)
	assert.Equal(t, "Example not found", m.examplesError)
	assert.Nil(t, m.selectedExample)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)

	assert.Equal(t, "heat-eq", m.selectedExampleID)
	require.NotNil(t, m.selectedExample)
	assert.Equal(t, 3, m.exampleDiffOrd)
	assert.Empty(t, m.examplesError)
}

func TestHealthFailure(t *testing.T) {
	fb := newFakeBackend()
	fb.healthErr = errors.New("connection refused")
	m := NewModel(fb, nil)

	m, _ = update(t, m, run(m.checkHealth())[0])
	assert.Equal(t, "error", m.apiStatus)
}

func TestCatalogFailureLeavesCustomUsable(t *testing.T) {
	fb := newFakeBackend()
	fb.examplesErr = &api.APIError{StatusCode: 500, Message: "Request failed (500)"}
	m := settle(t, NewModel(fb, nil), NewModel(fb, nil).Init())

	assert.Equal(t, "Request failed (500)", m.examplesError)
	assert.Empty(t, m.selectedExampleID)

	m.activeTab = TabCustom
	m.customInputs.Equations = "Derivative(u(t,x), t) = u(t,x)**3"
	m, cmd := m.handleQuadratizeCustom()
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, 1, fb.calls())
	assert.NotNil(t, m.results)
}

func TestExampleSubmitWithoutSelection(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)

	m, cmd := m.handleQuadratizeExample()
	assert.Nil(t, cmd)
	assert.Equal(t, "Select an example to quadratize.", m.err)
	assert.False(t, m.loading)
	assert.Zero(t, fb.calls())
}

func TestCustomSubmitBlankEquations(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)
	m.customInputs.Equations = "  \n\n\t\n"

	m, cmd := m.handleQuadratizeCustom()
	assert.Nil(t, cmd)
	assert.Equal(t, "Provide variables, functions, and at least one equation.", m.err)
	assert.Zero(t, fb.calls())
}

func TestCustomSubmitSendsTrimmedEquations(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)
	m.customInputs.Equations = "eq1\n\neq2\n  "

	m, cmd := m.handleQuadratizeCustom()
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	m = settle(t, m, cmd)

	require.Equal(t, 1, fb.calls())
	req, ok := fb.requests[0].(api.CustomRequest)
	require.True(t, ok)
	assert.Equal(t, []string{"eq1", "eq2"}, req.Equations)
	assert.Equal(t, "t,x", req.Vars)
	assert.Equal(t, "u", req.Funcs)
	assert.False(t, m.loading)
	assert.Equal(t, fb.resp, m.results)
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)
	m.selectedExampleID = "heat-eq"

	m, first := m.handleQuadratizeExample()
	require.NotNil(t, first)
	m, second := m.handleQuadratizeExample()
	assert.Nil(t, second)
	assert.Equal(t, uint64(1), m.requestSeq)
	assert.False(t, m.canSubmit())
}

func TestSupersededResultDropped(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	m.requestSeq = 2
	m.loading = true

	stale := &api.QuadratizeResponse{AuxVars: []string{"stale"}}
	m, _ = update(t, m, quadratizeDoneMsg{token: 1, resp: stale})
	assert.Nil(t, m.results)
	assert.True(t, m.loading)

	fresh := &api.QuadratizeResponse{AuxVars: []string{"fresh"}}
	m, _ = update(t, m, quadratizeDoneMsg{token: 2, resp: fresh})
	assert.Equal(t, fresh, m.results)
	assert.False(t, m.loading)
}

func TestFailureKeepsPreviousResults(t *testing.T) {
	fb := newFakeBackend()
	m := NewModel(fb, nil)
	m.selectedExampleID = "heat-eq"
	m, cmd := m.handleQuadratizeExample()
	m = settle(t, m, cmd)
	require.NotNil(t, m.results)

	fb.quadErr = &api.APIError{StatusCode: 400, Message: "Invalid equation"}
	m, cmd = m.handleQuadratizeExample()
	m = settle(t, m, cmd)
	assert.Equal(t, "Invalid equation", m.err)
	assert.NotNil(t, m.results)

	fb.quadErr = nil
	m, cmd = m.handleQuadratizeExample()
	assert.Empty(t, m.err, "submitting clears the previous error")
	m = settle(t, m, cmd)
	assert.Empty(t, m.err)
}

func TestTabSwitchMovesFocus(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, TabCustom, m.activeTab)
	assert.Equal(t, fieldFormat, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, api.FormatMathematica, m.customInputs.Format)
}

func TestAdvancedFieldsInFocusOrder(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	assert.NotContains(t, m.focusOrder(), fieldSearchAlg)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.True(t, m.advancedOpen)
	assert.Contains(t, m.focusOrder(), fieldSearchAlg)

	m.setFocus(fieldNVarsBound)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.False(t, m.advancedOpen)
	assert.Equal(t, fieldAdvancedToggle, m.focus)
}

func TestNonNumericTextStoresZero(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	m.advancedOpen = true
	m.setFocus(fieldMaxDerOrder)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Contains(t, m.maxDerInput.Value(), "x")
	assert.Equal(t, 0, m.advanced.MaxDerOrder)
	assert.Equal(t, 10, m.advanced.NVarsBound)
}

func TestRunsRecordedToHistory(t *testing.T) {
	store, err := history.NewSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	fb := newFakeBackend()
	m := NewModel(fb, store)
	m.selectedExampleID = "heat-eq"

	m, cmd := m.handleQuadratizeExample()
	m = settle(t, m, cmd)

	require.Len(t, m.runs, 1)
	assert.Equal(t, "heat-eq", m.runs[0].Label)
	assert.True(t, m.runs[0].Succeeded())

	m.results = nil
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.True(t, m.showHistory)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showHistory)
	require.NotNil(t, m.results)
	assert.Equal(t, []string{"w"}, m.results.AuxVars)
}

func TestSupersededRunStillRecorded(t *testing.T) {
	store, err := history.NewSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewModel(newFakeBackend(), store)
	m.requestSeq = 3
	req, err := api.NewExampleRequest("heat-eq", 2, api.DefaultOptions())
	require.NoError(t, err)

	now := time.Now()
	m, cmd := update(t, m, quadratizeDoneMsg{
		token:    1,
		req:      req,
		resp:     &api.QuadratizeResponse{AuxVars: []string{"old"}},
		started:  now,
		finished: now.Add(time.Second),
	})
	m = settle(t, m, cmd)

	assert.Nil(t, m.results)
	require.Len(t, m.runs, 1)
	assert.Equal(t, time.Second, m.runs[0].Duration())
}

func TestViewRendersBothLayouts(t *testing.T) {
	m := NewModel(newFakeBackend(), nil)
	assert.Equal(t, "Initializing...", m.View())

	for _, size := range []tea.WindowSizeMsg{{Width: 140, Height: 40}, {Width: 70, Height: 30}} {
		m, _ = update(t, m, size)
		view := m.View()
		assert.Contains(t, view, "QuadratizePDE")
		assert.Contains(t, view, "Custom PDE")
		assert.Contains(t, view, "Run an example or custom PDE to see the quadratic system.")
	}
}
