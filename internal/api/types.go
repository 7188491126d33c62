// Package api is the typed client for the QuadratizePDE HTTP service.
//
// The service owns the quadratization search; this package only moves
// structured input to it and typed results back. Four operations are
// exposed on Client: FetchHealth, FetchExamples, FetchExampleDetail and
// Quadratize. Non-2xx responses surface as *APIError.
package api

// ────────────────────────────────────────────────────────────
// Catalog
// ────────────────────────────────────────────────────────────

// ExampleSummary is one entry of the server's curated PDE catalog.
type ExampleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DiffOrd     int    `json:"diff_ord"`
	FirstIndep  string `json:"first_indep"`

	// EquationsLatex is a LaTeX rendering of each equation, when the
	// server provides one.
	EquationsLatex []string `json:"equations_latex,omitempty"`
}

// ExampleDetail is the full definition of a catalog problem.
type ExampleDetail struct {
	ExampleSummary
	Equations []string `json:"equations"`
	Vars      string   `json:"vars"`
	Funcs     string   `json:"funcs"`
}

// ────────────────────────────────────────────────────────────
// Search options
// ────────────────────────────────────────────────────────────

// SearchAlg selects the server-side search strategy.
type SearchAlg string

const (
	SearchBranchAndBound     SearchAlg = "bnb"
	SearchIterativeNarrowing SearchAlg = "inn"
)

var searchAlgs = []SearchAlg{SearchBranchAndBound, SearchIterativeNarrowing}

// Valid reports whether a is a known algorithm.
func (a SearchAlg) Valid() bool { return indexOf(searchAlgs, a) >= 0 }

// Next cycles to the following algorithm, wrapping around.
func (a SearchAlg) Next() SearchAlg { return cycle(searchAlgs, a, 1) }

// Prev cycles to the preceding algorithm, wrapping around.
func (a SearchAlg) Prev() SearchAlg { return cycle(searchAlgs, a, -1) }

// SortFun selects the heuristic used to order candidate monomials.
type SortFun string

const (
	SortByFun         SortFun = "by_fun"
	SortByDegreeOrder SortFun = "by_degree_order"
	SortByOrderDegree SortFun = "by_order_degree"
)

var sortFuns = []SortFun{SortByFun, SortByDegreeOrder, SortByOrderDegree}

func (s SortFun) Valid() bool   { return indexOf(sortFuns, s) >= 0 }
func (s SortFun) Next() SortFun { return cycle(sortFuns, s, 1) }
func (s SortFun) Prev() SortFun { return cycle(sortFuns, s, -1) }

// InputFormat is the syntax of custom equations.
type InputFormat string

const (
	FormatSympy       InputFormat = "sympy"
	FormatMathematica InputFormat = "mathematica"
)

var inputFormats = []InputFormat{FormatSympy, FormatMathematica}

func (f InputFormat) Valid() bool       { return indexOf(inputFormats, f) >= 0 }
func (f InputFormat) Next() InputFormat { return cycle(inputFormats, f, 1) }
func (f InputFormat) Prev() InputFormat { return cycle(inputFormats, f, -1) }

// Label is the human-facing name of the format.
func (f InputFormat) Label() string {
	switch f {
	case FormatMathematica:
		return "Mathematica"
	default:
		return "SymPy"
	}
}

// Options are the search tuning parameters shared by both request modes.
// Range checking is left to the server.
type Options struct {
	SearchAlg   SearchAlg `json:"search_alg"`
	SortFun     SortFun   `json:"sort_fun"`
	MaxDerOrder int       `json:"max_der_order"`
	NVarsBound  int       `json:"nvars_bound"`
	ShowNodes   bool      `json:"show_nodes"`
}

// DefaultOptions mirrors the server defaults.
func DefaultOptions() Options {
	return Options{
		SearchAlg:   SearchBranchAndBound,
		SortFun:     SortByFun,
		MaxDerOrder: 2,
		NVarsBound:  10,
		ShowNodes:   false,
	}
}

// CustomInputs is the raw state of the custom PDE form. Equations is
// free text with one equation per line.
type CustomInputs struct {
	Format    InputFormat
	Vars      string
	Funcs     string
	Equations string
}

// DefaultCustomInputs is the initial custom form.
func DefaultCustomInputs() CustomInputs {
	return CustomInputs{Format: FormatSympy, Vars: "t,x", Funcs: "u"}
}

// ────────────────────────────────────────────────────────────
// Results
// ────────────────────────────────────────────────────────────

// LatexOutput holds LaTeX renderings parallel to the plain-text arrays
// of a QuadratizeResponse. Any field may be missing.
type LatexOutput struct {
	AuxVars  []string `json:"aux_vars,omitempty"`
	FracVars []string `json:"frac_vars,omitempty"`
	QuadSys  []string `json:"quad_sys,omitempty"`
}

// QuadratizeResponse is the server's answer to a quadratization request.
type QuadratizeResponse struct {
	AuxVars  []string `json:"aux_vars"`
	FracVars []string `json:"frac_vars"`
	QuadSys  []string `json:"quad_sys"`

	// Traversed is the number of search nodes visited; only set when
	// ShowNodes was requested.
	Traversed   *int         `json:"traversed,omitempty"`
	LatexOutput *LatexOutput `json:"latex_output,omitempty"`
}

// Section is one titled list of a result, ready for display.
type Section struct {
	Title   string
	Entries []string
}

// Sections returns the auxiliary variables, fractional variables and
// quadratic system in display order. Each section uses the LaTeX list
// when it is non-empty and the plain list otherwise.
func (r *QuadratizeResponse) Sections() []Section {
	var tex LatexOutput
	if r.LatexOutput != nil {
		tex = *r.LatexOutput
	}
	return []Section{
		{Title: "Auxiliary Variables", Entries: preferLatex(tex.AuxVars, r.AuxVars)},
		{Title: "Fractional Variables", Entries: preferLatex(tex.FracVars, r.FracVars)},
		{Title: "Quadratic System", Entries: preferLatex(tex.QuadSys, r.QuadSys)},
	}
}

func preferLatex(tex, plain []string) []string {
	if len(tex) > 0 {
		return tex
	}
	return plain
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string `json:"status"`
}

func indexOf[T comparable](xs []T, x T) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// cycle steps through xs from x; unknown values restart at the first entry.
func cycle[T comparable](xs []T, x T, step int) T {
	i := indexOf(xs, x)
	if i < 0 {
		return xs[0]
	}
	n := len(xs)
	return xs[((i+step)%n+n)%n]
}
