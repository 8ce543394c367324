// Package storage provides SQLite-based history of finished bakery runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Live game state is never stored; a run is written once it ends.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons recorded with a run.
const (
	EndReset      = "reset"
	EndQuit       = "quit"
	EndDisconnect = "disconnect"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished bakery session.
type Run struct {
	ID        string
	Player    string
	UnitsSold int
	Revenue   int
	TopTier   string // Name of the tier active when the run ended
	EndReason string
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// Stats aggregates all recorded runs.
type Stats struct {
	Runs         int
	TotalSold    int64
	TotalRevenue int64
	BestRevenue  int
	LastPlayed   time.Time
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
			player TEXT NOT NULL DEFAULT '',
			units_sold INTEGER NOT NULL,
			revenue INTEGER NOT NULL,
			top_tier TEXT NOT NULL DEFAULT '',
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_revenue ON runs(revenue DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a finished run and returns its ID.
// A new UUID is assigned when run.ID is empty.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.EndReason == "" {
		run.EndReason = EndQuit
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, player, units_sold, revenue, top_tier, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Player, run.UnitsSold, run.Revenue, run.TopTier, run.EndReason, run.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, player, units_sold, revenue, top_tier, end_reason, duration_secs, created_at`

// TopRuns retrieves the N most profitable runs.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY revenue DESC, units_sold DESC LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the most recent runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		player, limit,
	)
}

// BestRun returns the most profitable run, or nil if none exist.
func (s *Store) BestRun() (*Run, error) {
	runs, err := s.TopRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Stats returns aggregate statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(units_sold), 0), COALESCE(SUM(revenue), 0),
		        COALESCE(MAX(revenue), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.TotalSold, &stats.TotalRevenue, &stats.BestRevenue, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunByID retrieves a run, or nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	var r Run
	var createdAt any

	err := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &r.Player, &r.UnitsSold, &r.Revenue, &r.TopTier, &r.EndReason, &r.Duration, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Player, &r.UnitsSold, &r.Revenue, &r.TopTier, &r.EndReason, &r.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles DATETIME values returned either as time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
