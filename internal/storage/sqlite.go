// Package storage provides SQLite-based persistence for the round log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The log records how rounds went; it never holds a board, so a round
// cannot be restored from it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a round ended.
type Outcome string

const (
	// OutcomeFound means every boat was found.
	OutcomeFound Outcome = "found"
	// OutcomeAbandoned means the player left before finding the fleet.
	OutcomeAbandoned Outcome = "abandoned"
)

// Store manages the SQLite database connection for the round log.
type Store struct {
	db *sql.DB
}

// Round is one logged round.
type Round struct {
	ID        int64
	Outcome   Outcome
	Width     int
	Height    int
	Boats     int
	Guesses   int
	Duration  time.Duration
	Player    string // "local" or the SSH user
	CreatedAt time.Time
}

// RoundStats contains aggregated statistics over the round log.
type RoundStats struct {
	Rounds      int
	Found       int
	Abandoned   int
	BestGuesses int // Fewest guesses in a found round, 0 when none
	AvgGuesses  float64
	LastPlayed  time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outcome TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			boats INTEGER NOT NULL,
			guesses INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
		CREATE INDEX IF NOT EXISTS idx_rounds_outcome ON rounds(outcome, guesses);
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

// SaveRound records a finished or abandoned round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r Round) (int64, error) {
	if r.Player == "" {
		r.Player = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (outcome, width, height, boats, guesses, duration_ms, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(r.Outcome), r.Width, r.Height, r.Boats, r.Guesses, r.Duration.Milliseconds(), r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, outcome, width, height, boats, guesses, duration_ms, player, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// PlayerRounds retrieves the most recent rounds of one player, newest first.
func (s *Store) PlayerRounds(player string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, outcome, width, height, boats, guesses, duration_ms, player, created_at
		 FROM rounds
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player rounds: %w", err)
	}
	return scanRounds(rows)
}

// scanRounds reads and closes a round result set.
func scanRounds(rows *sql.Rows) ([]Round, error) {
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var outcome string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &outcome, &r.Width, &r.Height, &r.Boats, &r.Guesses,
			&durationMS, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// Stats retrieves aggregated statistics over all rounds.
func (s *Store) Stats() (*RoundStats, error) {
	stats := &RoundStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		 FROM rounds`,
		string(OutcomeFound), string(OutcomeAbandoned),
	).Scan(&stats.Rounds, &stats.Found, &stats.Abandoned)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(MIN(guesses), 0), COALESCE(AVG(guesses), 0)
		 FROM rounds WHERE outcome = ?`,
		string(OutcomeFound),
	).Scan(&stats.BestGuesses, &stats.AvgGuesses)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get guess stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM rounds ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRounds deletes the whole round log.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
