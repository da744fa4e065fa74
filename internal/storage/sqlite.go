// Package storage provides SQLite-based persistence for the snake-arena
// leaderboard. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry is a player's best score in one mode.
type ScoreEntry struct {
	Player    string
	Mode      string
	Score     int
	BoardSize int
	RunID     string
	CreatedAt time.Time
}

// Submission is the outcome of SubmitScore.
type Submission struct {
	RunID        string // Identifies the recorded run
	Rank         int    // 1-based position of the score within its mode
	IsNewBest    bool   // Score replaced the player's previous best
	PreviousBest int    // Best before this run, 0 if none
}

// ModeStats contains aggregated statistics for one mode.
type ModeStats struct {
	Mode       string
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Concurrent SSH sessions share one store; serialize writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
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
			run_id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			board_size INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);

		CREATE TABLE IF NOT EXISTS best_scores (
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			board_size INTEGER NOT NULL,
			run_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (player, mode)
		);
		CREATE INDEX IF NOT EXISTS idx_best_scores_top ON best_scores(mode, score DESC);
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

// SubmitScore records a finished run. The player's best for the mode is only
// replaced by a strictly higher score. Rank is one more than the number of
// best scores in the mode that are strictly higher than score.
func (s *Store) SubmitScore(player, mode string, score, boardSize int) (Submission, error) {
	if player == "" {
		return Submission{}, errors.New("storage: player name is required")
	}
	if score < 0 {
		return Submission{}, fmt.Errorf("storage: negative score %d", score)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Submission{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	sub := Submission{RunID: uuid.NewString()}
	now := s.now().UTC().Format(time.RFC3339Nano)

	if _, err := tx.Exec(
		"INSERT INTO runs (run_id, player, mode, score, board_size, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		sub.RunID, player, mode, score, boardSize, now,
	); err != nil {
		return Submission{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	var prev sql.NullInt64
	err = tx.QueryRow(
		"SELECT score FROM best_scores WHERE player = ? AND mode = ?",
		player, mode,
	).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if prev.Valid {
		sub.PreviousBest = int(prev.Int64)
	}

	if !prev.Valid || score > sub.PreviousBest {
		sub.IsNewBest = true
		if _, err := tx.Exec(
			`INSERT INTO best_scores (player, mode, score, board_size, run_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(player, mode) DO UPDATE SET
			   score = excluded.score,
			   board_size = excluded.board_size,
			   run_id = excluded.run_id,
			   created_at = excluded.created_at`,
			player, mode, score, boardSize, sub.RunID, now,
		); err != nil {
			return Submission{}, fmt.Errorf("storage: cannot save best score: %w", err)
		}
	}

	var higher int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM best_scores WHERE mode = ? AND score > ?",
		mode, score,
	).Scan(&higher); err != nil {
		return Submission{}, fmt.Errorf("storage: cannot compute rank: %w", err)
	}
	sub.Rank = higher + 1

	if err := tx.Commit(); err != nil {
		return Submission{}, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return sub, nil
}

// TopScores retrieves the best score of each player in the given mode.
// Results are ordered by score descending, earliest first on ties.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, mode, score, board_size, run_id, created_at
		 FROM best_scores
		 WHERE mode = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.Player, &e.Mode, &e.Score, &e.BoardSize, &e.RunID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the player's best score in mode, or 0 if none exists.
func (s *Store) BestScore(player, mode string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE player = ? AND mode = ?",
		player, mode,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// ModeStats retrieves aggregated statistics over every recorded run in mode.
func (s *Store) ModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearScores deletes every run and best score in mode.
func (s *Store) ClearScores(mode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM best_scores WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999 -0700 MST", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
