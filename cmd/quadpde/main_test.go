package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"

	"github.com/stretchr/testify/assert"
)

func TestPrintResult(t *testing.T) {
	nodes := 12
	resp := &api.QuadratizeResponse{
		AuxVars:     []string{"w0"},
		QuadSys:     []string{"u' = w0"},
		Traversed:   &nodes,
		LatexOutput: &api.LatexOutput{AuxVars: []string{"w_{0}"}},
	}

	started := time.Date(2026, 3, 4, 9, 15, 30, 250*int(time.Millisecond), time.UTC)

	var buf bytes.Buffer
	printResult(&buf, resp, started, started.Add(1500*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "Aux vars: 1   Frac vars: 0   Quad sys size: 1   Nodes: 12   (1.5s)")
	assert.Contains(t, out, "Started: 2026-03-04 09:15:30.250\n")
	assert.Contains(t, out, "Auxiliary Variables\n  w₀\n")
	assert.Contains(t, out, "Fractional Variables\n  No entries.\n")
	assert.Contains(t, out, "Quadratic System\n  u' = w0\n")
}

func TestEquationFlagsRepeat(t *testing.T) {
	var eqs equationFlags
	assert.NoError(t, eqs.Set("a = b"))
	assert.NoError(t, eqs.Set("c = d"))
	assert.Equal(t, "a = b\nc = d", eqs.String())
}

func TestCustomFlagsWithExample(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]bool
		want []string
	}{
		{"example alone", map[string]bool{"example": true, "diff-ord": true}, nil},
		{"custom alone", map[string]bool{"vars": true, "funcs": true, "eq": true}, nil},
		{"example with eq", map[string]bool{"example": true, "eq": true}, []string{"--eq"}},
		{
			"example with every custom flag",
			map[string]bool{"example": true, "vars": true, "funcs": true, "eq": true, "eq-file": true},
			[]string{"--vars", "--funcs", "--eq", "--eq-file"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, customFlagsWithExample(tt.set))
		})
	}
}
