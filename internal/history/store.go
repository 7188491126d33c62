// Package history keeps the quadratization runs of the current session.
//
// It implements the Store interface on an in-memory SQLite database
// with an embedded schema. The database lives exactly as long as the
// process: nothing is written to disk and every run is gone on restart.
package history

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Mr-Dark-debug/quadpde/internal/api"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Store records and replays session runs. The TUI depends on this
// interface so tests can substitute a fake.
type Store interface {
	// Record persists a finished run, assigning an ID if it has none.
	Record(run *Run) error
	// List returns up to limit runs, most recent first.
	List(limit int) ([]*Run, error)
	// Get returns a single run by id.
	Get(id string) (*Run, error)
	// Close releases the database.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// Run is one submitted quadratization and its outcome.
type Run struct {
	ID         string
	Mode       api.Mode
	Label      string
	Request    json.RawMessage
	Response   *api.QuadratizeResponse
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is how long the server took to answer.
func (r *Run) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Succeeded reports whether the run produced a response.
func (r *Run) Succeeded() bool { return r.Response != nil && r.Error == "" }

// NewRun captures req and its outcome. Exactly one of resp and runErr
// is expected to be set.
func NewRun(req api.QuadratizeRequest, resp *api.QuadratizeResponse, runErr error, started, finished time.Time) (*Run, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding run request: %w", err)
	}
	run := &Run{
		ID:         uuid.NewString(),
		Mode:       req.Mode(),
		Label:      label(req),
		Request:    raw,
		Response:   resp,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if runErr != nil {
		run.Error = runErr.Error()
		run.Response = nil
	}
	return run, nil
}

// label summarizes a request in one line.
func label(req api.QuadratizeRequest) string {
	switch r := req.(type) {
	case api.ExampleRequest:
		return r.ExampleID
	case api.CustomRequest:
		if len(r.Equations) == 0 {
			return "custom"
		}
		first := r.Equations[0]
		if len(r.Equations) > 1 {
			first += fmt.Sprintf(" (+%d)", len(r.Equations)-1)
		}
		return first
	default:
		return string(req.Mode())
	}
}

// ============================================================
// SQLite implementation
// ============================================================

// SessionStore implements Store on an in-memory SQLite database.
// A single connection is kept open; closing it discards every run.
type SessionStore struct {
	db *sql.DB
	mu sync.RWMutex

	stmtInsert *sql.Stmt
}

// NewSessionStore opens a fresh in-memory database and applies the schema.
func NewSessionStore() (*SessionStore, error) {
	db, err := sql.Open("sqlite3", "file::memory:?mode=memory&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SessionStore{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	s.stmtInsert, err = db.Prepare(`
		INSERT INTO runs (run_id, mode, label, request_json, response_json, error_message,
			started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return s, nil
}

func (s *SessionStore) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Record inserts run. Runs are immutable; recording the same ID twice fails.
func (s *SessionStore) Record(run *Run) error {
	if run == nil {
		return errors.New("recording nil run")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	var respJSON *string
	if run.Response != nil {
		b, err := json.Marshal(run.Response)
		if err != nil {
			return fmt.Errorf("encoding response of run %s: %w", run.ID, err)
		}
		str := string(b)
		respJSON = &str
	}

	var errMsg *string
	if run.Error != "" {
		errMsg = &run.Error
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.stmtInsert.Exec(
		run.ID, string(run.Mode), run.Label, string(run.Request), respJSON, errMsg,
		run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

const selectRun = `
	SELECT run_id, mode, label, request_json, response_json, error_message, started_at, finished_at
	FROM runs`

// List returns runs ordered by start time, newest first. A limit of
// zero or less means 100.
func (s *SessionStore) List(limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(selectRun+` ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id, or ErrNotFound.
func (s *SessionStore) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRow(selectRun+` WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// Close discards the session database.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stmtInsert != nil {
		s.stmtInsert.Close()
	}
	return s.db.Close()
}

// ============================================================
// Scan Helpers
// ============================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run              Run
		mode             string
		request          string
		respJSON, errMsg sql.NullString
		started, ended   int64
	)
	if err := row.Scan(&run.ID, &mode, &run.Label, &request, &respJSON, &errMsg, &started, &ended); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run row: %w", err)
	}

	run.Mode = api.Mode(mode)
	run.Request = json.RawMessage(request)
	run.Error = errMsg.String
	run.StartedAt = time.Unix(0, started)
	run.FinishedAt = time.Unix(0, ended)

	if respJSON.Valid && strings.TrimSpace(respJSON.String) != "" {
		var resp api.QuadratizeResponse
		if err := json.Unmarshal([]byte(respJSON.String), &resp); err != nil {
			return nil, fmt.Errorf("decoding response of run %s: %w", run.ID, err)
		}
		run.Response = &resp
	}
	return &run, nil
}
