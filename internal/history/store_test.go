package history

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := NewSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestNewSessionStore verifies the embedded schema applies.
func TestNewSessionStore(t *testing.T) {
	s := newStore(t)
	runs, err := s.List(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

// TestSchemaColumnsAreRead checks every stored column is one the
// select reads back.
func TestSchemaColumnsAreRead(t *testing.T) {
	s := newStore(t)

	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('runs')`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{
		"run_id", "mode", "label", "request_json", "response_json",
		"error_message", "started_at", "finished_at",
	}, cols)
	for _, c := range cols {
		assert.Contains(t, selectRun, c)
	}
}

func TestRecordAndGetSuccessfulRun(t *testing.T) {
	s := newStore(t)

	req, err := api.NewExampleRequest("heat-eq", 3, api.DefaultOptions())
	require.NoError(t, err)

	nodes := 42
	resp := &api.QuadratizeResponse{
		AuxVars:     []string{"u**2"},
		FracVars:    []string{},
		QuadSys:     []string{"w' = 2*u*u'"},
		Traversed:   &nodes,
		LatexOutput: &api.LatexOutput{AuxVars: []string{"u^{2}"}},
	}
	start := time.Now()
	run, err := NewRun(req, resp, nil, start, start.Add(1500*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, s.Record(run))

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, api.ModeExample, got.Mode)
	assert.Equal(t, "heat-eq", got.Label)
	assert.True(t, got.Succeeded())
	assert.Equal(t, 1500*time.Millisecond, got.Duration())
	require.NotNil(t, got.Response)
	assert.Equal(t, []string{"u^{2}"}, got.Response.LatexOutput.AuxVars)
	require.NotNil(t, got.Response.Traversed)
	assert.Equal(t, 42, *got.Response.Traversed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.Request, &body))
	assert.Equal(t, "example", body["mode"])
	assert.Equal(t, "heat-eq", body["example_id"])
}

func TestRecordFailedRun(t *testing.T) {
	s := newStore(t)

	req, err := api.NewCustomRequest(api.CustomInputs{Vars: "t,x", Funcs: "u", Equations: "eq1\neq2\neq3"}, 2, api.DefaultOptions())
	require.NoError(t, err)

	now := time.Now()
	run, err := NewRun(req, &api.QuadratizeResponse{}, errors.New("Parse error"), now, now)
	require.NoError(t, err)
	assert.Nil(t, run.Response, "error runs drop the response")
	require.NoError(t, s.Record(run))

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.False(t, got.Succeeded())
	assert.Equal(t, "Parse error", got.Error)
	assert.Equal(t, "eq1 (+2)", got.Label)
	assert.Equal(t, api.ModeCustom, got.Mode)
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newStore(t)

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		req, err := api.NewExampleRequest(id, 2, api.DefaultOptions())
		require.NoError(t, err)
		at := base.Add(time.Duration(i) * time.Second)
		run, err := NewRun(req, &api.QuadratizeResponse{}, nil, at, at)
		require.NoError(t, err)
		require.NoError(t, s.Record(run))
	}

	runs, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].Label)
	assert.Equal(t, "b", runs[1].Label)
}

func TestGetUnknownRun(t *testing.T) {
	s := newStore(t)
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordDuplicateID(t *testing.T) {
	s := newStore(t)
	run := &Run{ID: "dup", Mode: api.ModeExample, Label: "x", Request: json.RawMessage(`{}`)}
	require.NoError(t, s.Record(run))
	assert.Error(t, s.Record(run))
}

// TestStoresAreIsolated verifies each session starts empty.
func TestStoresAreIsolated(t *testing.T) {
	first := newStore(t)
	require.NoError(t, first.Record(&Run{Mode: api.ModeExample, Label: "x", Request: json.RawMessage(`{}`)}))

	second := newStore(t)
	runs, err := second.List(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
