// Package store records finished sessions in a SQLite database
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP NOT NULL,
	buildings      INTEGER NOT NULL,
	words_completed INTEGER NOT NULL,
	perfect_words  INTEGER NOT NULL,
	wrong_attempts INTEGER NOT NULL,
	best_streak    INTEGER NOT NULL,
	accuracy       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_finished ON sessions(finished_at);
`

// Result is one recorded session
type Result struct {
	ID             int64
	StartedAt      time.Time
	FinishedAt     time.Time
	Buildings      int
	WordsCompleted int
	PerfectWords   int
	WrongAttempts  int
	BestStreak     int
	Accuracy       int
}

// ErrNoResults is returned by Best on an empty store
var ErrNoResults = errors.New("no recorded sessions")

// Store wraps the results database
type Store struct {
	db *sql.DB
}

// Open creates the database file and its parent directory when missing
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer, the game records at most once per session
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a finished session and returns its row id
func (s *Store) Record(ctx context.Context, r Result) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
			(started_at, finished_at, buildings, words_completed, perfect_words,
			 wrong_attempts, best_streak, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Buildings, r.WordsCompleted, r.PerfectWords,
		r.WrongAttempts, r.BestStreak, r.Accuracy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

const columns = `id, started_at, finished_at, buildings, words_completed, perfect_words,
	wrong_attempts, best_streak, accuracy`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	err := row.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Buildings, &r.WordsCompleted,
		&r.PerfectWords, &r.WrongAttempts, &r.BestStreak, &r.Accuracy)
	return r, err
}

// Recent returns the latest sessions, newest first
// A non-positive limit defaults to 10
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM sessions ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Best returns the session with the highest accuracy
// Ties go to the longer streak, then the earlier session
func (s *Store) Best(ctx context.Context) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM sessions ORDER BY accuracy DESC, best_streak DESC, id ASC LIMIT 1`)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNoResults
	}
	if err != nil {
		return Result{}, fmt.Errorf("query best: %w", err)
	}
	return r, nil
}

// Count returns the number of recorded sessions
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions`).Scan(&n)
	return n, err
}
