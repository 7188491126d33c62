// QuadPDE CLI: scriptable access to the QuadratizePDE service.
//
// Usage:
//
//	quadpde <command> [flags]
//
// Commands:
//
//	health      Check that the service is up
//	examples    List the example catalog
//	example     Show one example
//	quadratize  Quadratize an example or a custom PDE
//	version     Print version information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"
	"github.com/Mr-Dark-debug/quadpde/internal/config"
	"github.com/Mr-Dark-debug/quadpde/internal/latex"
	"github.com/Mr-Dark-debug/quadpde/pkg/timeutil"

	"github.com/joho/godotenv"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load(".env")
	cfg := config.Load()

	switch os.Args[1] {
	case "health":
		cmdHealth(cfg)
	case "examples":
		cmdExamples(cfg)
	case "example":
		cmdExample(cfg)
	case "quadratize":
		cmdQuadratize(cfg)
	case "version":
		fmt.Printf("QuadPDE v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`QuadPDE: quadratize partial differential equations

Usage:
  quadpde <command> [flags]

Commands:
  health      Check that the service is up
  examples    List the example catalog
  example     Show one example (--id)
  quadratize  Quadratize an example (--example) or a custom PDE (--vars, --funcs, --eq)
  version     Print version information

Environment:
  QUADPDE_API_BASE_URL             Service root (default http://localhost:8000)
  QUADPDE_REQUEST_TIMEOUT_SECONDS  Per-request timeout, 0 for none
  QUADPDE_LOG_FILE                 Write logs here instead of stderr

Run 'quadpde <command> --help' for details on each command.`)
}

// commonFlags are accepted by every networked command.
type commonFlags struct {
	api     *string
	verbose *bool
}

func newFlagSet(name string, cfg config.Config) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs, commonFlags{
		api:     fs.String("api", cfg.APIBaseURL, "Base URL of the quadratization service"),
		verbose: fs.Bool("v", false, "Log every request"),
	}
}

// client builds the API client and configures logging once flags are
// parsed.
func (c commonFlags) client(cfg config.Config) *api.Client {
	level := slog.LevelWarn
	if *c.verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.LogFile, err)
		}
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	return api.New(*c.api,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(b))
}

func checkFormat(format string) {
	if format != "text" && format != "json" {
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", format)
		os.Exit(1)
	}
}

// cmdHealth prints the service status.
func cmdHealth(cfg config.Config) {
	fs, common := newFlagSet("health", cfg)
	fs.Parse(os.Args[2:])
	c := common.client(cfg)

	status, err := c.FetchHealth(context.Background())
	if err != nil {
		fmt.Printf("API error (%s)\n", c.BaseURL())
		fail(err)
	}
	fmt.Printf("API %s (%s)\n", status, c.BaseURL())
	if status != "healthy" {
		os.Exit(1)
	}
}

// cmdExamples lists the catalog.
func cmdExamples(cfg config.Config) {
	fs, common := newFlagSet("examples", cfg)
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])
	checkFormat(*format)

	examples, err := common.client(cfg).FetchExamples(context.Background())
	if err != nil {
		fail(err)
	}

	if *format == "json" {
		printJSON(examples)
		return
	}
	if len(examples) == 0 {
		fmt.Println("No examples available.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDIFF ORD\tDESCRIPTION")
	for _, ex := range examples {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", ex.ID, ex.Name, ex.DiffOrd, ex.Description)
	}
	w.Flush()
}

// cmdExample shows one example's definition and equation preview.
func cmdExample(cfg config.Config) {
	fs, common := newFlagSet("example", cfg)
	id := fs.String("id", "", "Example ID (required)")
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])
	checkFormat(*format)

	if strings.TrimSpace(*id) == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		fs.Usage()
		os.Exit(1)
	}

	detail, err := common.client(cfg).FetchExampleDetail(context.Background(), *id)
	if err != nil {
		fail(err)
	}

	if *format == "json" {
		printJSON(detail)
		return
	}

	fmt.Printf("%s (%s)\n", detail.Name, detail.ID)
	if detail.Description != "" {
		fmt.Printf("\n  %s\n", detail.Description)
	}
	fmt.Println()
	fmt.Printf("  Variables:              %s\n", detail.Vars)
	fmt.Printf("  Functions:              %s\n", detail.Funcs)
	fmt.Printf("  First independent var:  %s\n", detail.FirstIndep)
	fmt.Printf("  Differentiation order:  %d\n", detail.DiffOrd)
	fmt.Println()
	fmt.Println("Equations")
	if len(detail.EquationsLatex) == 0 && len(detail.Equations) == 0 {
		fmt.Println("  No equations available.")
	}
	for _, eq := range detail.EquationsLatex {
		fmt.Println(latex.Render(eq, false))
	}
	if len(detail.EquationsLatex) == 0 {
		for _, eq := range detail.Equations {
			fmt.Printf("  %s\n", eq)
		}
	}
}

// equationFlags collects repeated --eq values.
type equationFlags []string

func (e *equationFlags) String() string { return strings.Join(*e, "\n") }

func (e *equationFlags) Set(v string) error {
	*e = append(*e, v)
	return nil
}

// customFlagsWithExample lists the custom-mode flags set alongside
// --example.
func customFlagsWithExample(set map[string]bool) []string {
	if !set["example"] {
		return nil
	}
	var conflicts []string
	for _, name := range []string{"vars", "funcs", "eq", "eq-file", "input-format"} {
		if set[name] {
			conflicts = append(conflicts, "--"+name)
		}
	}
	return conflicts
}

// cmdQuadratize submits an example or custom request and prints the
// result.
func cmdQuadratize(cfg config.Config) {
	fs, common := newFlagSet("quadratize", cfg)
	exampleID := fs.String("example", "", "Quadratize this catalog example")
	vars := fs.String("vars", "", "Independent variables, e.g. t,x")
	funcs := fs.String("funcs", "", "Functions, e.g. u,v")
	var eqs equationFlags
	fs.Var(&eqs, "eq", "Equation (repeatable)")
	eqFile := fs.String("eq-file", "", "Read equations from a file, one per line")
	inputFormat := fs.String("input-format", string(api.FormatSympy), "Equation syntax: sympy, mathematica")
	diffOrd := fs.Int("diff-ord", 2, "Differentiation order (examples default to the catalog value)")

	defaults := api.DefaultOptions()
	searchAlg := fs.String("search-alg", string(defaults.SearchAlg), "Search algorithm: bnb, inn")
	sortFun := fs.String("sort-fun", string(defaults.SortFun), "Sort function: by_fun, by_degree_order, by_order_degree")
	maxDerOrder := fs.Int("max-der-order", defaults.MaxDerOrder, "Maximum derivative order")
	nvarsBound := fs.Int("nvars-bound", defaults.NVarsBound, "Upper bound on introduced variables")
	showNodes := fs.Bool("show-nodes", defaults.ShowNodes, "Report the number of traversed nodes")
	format := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])
	checkFormat(*format)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if conflicts := customFlagsWithExample(set); len(conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "Error: --example cannot be combined with %s\n", strings.Join(conflicts, ", "))
		fs.Usage()
		os.Exit(1)
	}

	opts := api.Options{
		SearchAlg:   api.SearchAlg(*searchAlg),
		SortFun:     api.SortFun(*sortFun),
		MaxDerOrder: *maxDerOrder,
		NVarsBound:  *nvarsBound,
		ShowNodes:   *showNodes,
	}
	if !opts.SearchAlg.Valid() {
		fail(fmt.Errorf("unknown search algorithm %q", *searchAlg))
	}
	if !opts.SortFun.Valid() {
		fail(fmt.Errorf("unknown sort function %q", *sortFun))
	}

	c := common.client(cfg)
	ctx := context.Background()

	var req api.QuadratizeRequest
	var err error
	if *exampleID != "" {
		ord := *diffOrd
		if !set["diff-ord"] {
			detail, err := c.FetchExampleDetail(ctx, *exampleID)
			if err != nil {
				fail(err)
			}
			ord = detail.DiffOrd
		}
		req, err = api.NewExampleRequest(*exampleID, ord, opts)
	} else {
		text := strings.Join(eqs, "\n")
		if *eqFile != "" {
			b, readErr := os.ReadFile(*eqFile)
			if readErr != nil {
				fail(fmt.Errorf("reading equations: %w", readErr))
			}
			text = strings.TrimRight(text+"\n"+string(b), "\n")
		}
		if !api.InputFormat(*inputFormat).Valid() {
			fail(fmt.Errorf("unknown input format %q", *inputFormat))
		}
		req, err = api.NewCustomRequest(api.CustomInputs{
			Format:    api.InputFormat(*inputFormat),
			Vars:      *vars,
			Funcs:     *funcs,
			Equations: text,
		}, *diffOrd, opts)
	}
	if err != nil {
		if errors.Is(err, api.ErrNoExample) || errors.Is(err, api.ErrIncompleteCustom) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fs.Usage()
			os.Exit(1)
		}
		fail(err)
	}

	started := time.Now()
	resp, err := c.Quadratize(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Quadratization failed")
		fail(err)
	}

	if *format == "json" {
		printJSON(resp)
		return
	}
	printResult(os.Stdout, resp, started, time.Now())
}

// printResult writes the result the way the TUI's results panel lays it
// out.
func printResult(w io.Writer, resp *api.QuadratizeResponse, started, finished time.Time) {
	meta := fmt.Sprintf("Aux vars: %d   Frac vars: %d   Quad sys size: %d",
		len(resp.AuxVars), len(resp.FracVars), len(resp.QuadSys))
	if resp.Traversed != nil {
		meta += fmt.Sprintf("   Nodes: %d", *resp.Traversed)
	}

	fmt.Fprintln(w, "Quadratization Results")
	fmt.Fprintf(w, "%s   (%s)\n", meta, timeutil.FormatDuration(finished.Sub(started)))
	fmt.Fprintf(w, "Started: %s\n", timeutil.FormatTimestampFull(started))
	for _, sec := range resp.Sections() {
		fmt.Fprintf(w, "\n%s\n", sec.Title)
		if len(sec.Entries) == 0 {
			fmt.Fprintln(w, "  No entries.")
			continue
		}
		for _, item := range sec.Entries {
			fmt.Fprintln(w, latex.Render(item, false))
		}
	}
}
