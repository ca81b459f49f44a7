// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("storage: run not found")

// ErrAmbiguousID is returned when an ID prefix matches more than one run.
var ErrAmbiguousID = errors.New("storage: ambiguous run id")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Press is one recorded input event. Tick is the number of updates that
// had completed when the button was pressed.
type Press struct {
	Tick   uint64
	Button string
}

// Run is a recorded session: enough to re-execute it deterministically.
type Run struct {
	ID         string
	Host       string // "tui", "window", "ssh" or "web"
	Seed       int64
	Config     []byte // YAML the game was built from
	Final      snake.Snapshot
	Presses    []Press // Empty in listings
	PressCount int     // Set by every query
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			host TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			final TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_presses (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			button TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run and its presses in one transaction.
// A run without an ID gets a fresh UUID. Returns the stored ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	final, err := json.Marshal(run.Final)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode final snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	_, err = tx.Exec(
		"INSERT INTO runs (id, host, seed, config, ticks, final) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Host, run.Seed, string(run.Config), int64(run.Final.Tick), string(final),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_presses (run_id, seq, tick, button) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare presses: %w", err)
	}
	defer stmt.Close()

	for i, p := range run.Presses {
		if _, err := stmt.Exec(run.ID, i, int64(p.Tick), p.Button); err != nil {
			return "", fmt.Errorf("storage: cannot save press %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// RunByID loads a run with all of its presses.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, host, seed, config, final,
			(SELECT COUNT(*) FROM run_presses WHERE run_id = runs.id), created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT tick, button FROM run_presses WHERE run_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query presses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Press
		var tick int64
		if err := rows.Scan(&tick, &p.Button); err != nil {
			return nil, fmt.Errorf("storage: cannot scan press: %w", err)
		}
		p.Tick = uint64(tick)
		run.Presses = append(run.Presses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &run, nil
}

// FindRun loads the run whose ID is id or starts with it.
func (s *Store) FindRun(id string) (*Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.Query(
		"SELECT id FROM runs WHERE substr(id, 1, length(?)) = ? LIMIT 2",
		id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var match string
		if err := rows.Scan(&match); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run id: %w", err)
		}
		ids = append(ids, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return s.RunByID(ids[0])
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// RecentRuns lists the newest runs first, without their presses.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, host, seed, config, final,
			(SELECT COUNT(*) FROM run_presses WHERE run_id = runs.id), created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its presses.
func (s *Store) DeleteRun(id string) error {
	if _, err := s.db.Exec("DELETE FROM run_presses WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete presses: %w", err)
	}
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var config, final string
	var createdAt any
	if err := row.Scan(&run.ID, &run.Host, &run.Seed, &config, &final, &run.PressCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	run.Config = []byte(config)
	if err := json.Unmarshal([]byte(final), &run.Final); err != nil {
		return run, fmt.Errorf("storage: cannot decode final snapshot of %s: %w", run.ID, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		run.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			run.CreatedAt = parsed
		}
	}
	return run, nil
}
