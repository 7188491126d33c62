package api

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrNoExample is returned when an example request has no example id.
	ErrNoExample = errors.New("Select an example to quadratize.")

	// ErrIncompleteCustom is returned when a custom request is missing
	// vars, funcs or every equation.
	ErrIncompleteCustom = errors.New("Provide variables, functions, and at least one equation.")
)

// Mode discriminates the two request shapes on the wire.
type Mode string

const (
	ModeExample Mode = "example"
	ModeCustom  Mode = "custom"
)

// QuadratizeRequest is either an ExampleRequest or a CustomRequest.
// Build one with NewExampleRequest or NewCustomRequest.
type QuadratizeRequest interface {
	Mode() Mode
	// Validate reports whether the request may be sent.
	Validate() error
	json.Marshaler

	sealed()
}

// ExampleRequest quadratizes a catalog problem.
type ExampleRequest struct {
	ExampleID string
	DiffOrd   int
	Options   Options
}

// NewExampleRequest builds a request for the catalog entry id.
func NewExampleRequest(id string, diffOrd int, opts Options) (ExampleRequest, error) {
	req := ExampleRequest{ExampleID: strings.TrimSpace(id), DiffOrd: diffOrd, Options: opts}
	if err := req.Validate(); err != nil {
		return ExampleRequest{}, err
	}
	return req, nil
}

func (ExampleRequest) Mode() Mode { return ModeExample }
func (ExampleRequest) sealed()    {}

func (r ExampleRequest) Validate() error {
	if strings.TrimSpace(r.ExampleID) == "" {
		return ErrNoExample
	}
	return nil
}

func (r ExampleRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode      Mode   `json:"mode"`
		ExampleID string `json:"example_id"`
		DiffOrd   int    `json:"diff_ord"`
		Options
	}{ModeExample, r.ExampleID, r.DiffOrd, r.Options})
}

// CustomRequest quadratizes user-supplied equations.
type CustomRequest struct {
	Equations []string
	Vars      string
	Funcs     string
	Format    InputFormat
	DiffOrd   int
	Options   Options
}

// NewCustomRequest splits the free-text equations and checks that the
// form is complete.
func NewCustomRequest(in CustomInputs, diffOrd int, opts Options) (CustomRequest, error) {
	format := in.Format
	if !format.Valid() {
		format = FormatSympy
	}
	req := CustomRequest{
		Equations: SplitEquations(in.Equations),
		Vars:      strings.TrimSpace(in.Vars),
		Funcs:     strings.TrimSpace(in.Funcs),
		Format:    format,
		DiffOrd:   diffOrd,
		Options:   opts,
	}
	if err := req.Validate(); err != nil {
		return CustomRequest{}, err
	}
	return req, nil
}

func (CustomRequest) Mode() Mode { return ModeCustom }
func (CustomRequest) sealed()    {}

func (r CustomRequest) Validate() error {
	if r.Vars == "" || r.Funcs == "" || len(r.Equations) == 0 {
		return ErrIncompleteCustom
	}
	return nil
}

func (r CustomRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode      Mode        `json:"mode"`
		Equations []string    `json:"equations"`
		Vars      string      `json:"vars"`
		Funcs     string      `json:"funcs"`
		Format    InputFormat `json:"format"`
		DiffOrd   int         `json:"diff_ord"`
		Options
	}{ModeCustom, r.Equations, r.Vars, r.Funcs, r.Format, r.DiffOrd, r.Options})
}

// SplitEquations turns multi-line text into one trimmed equation per
// non-blank line.
func SplitEquations(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
