// Package storage provides SQLite-based persistence for finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DefaultLimit is the number of rows returned when a query asks for none.
const DefaultLimit = 10

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry is a single won round.
type ResultEntry struct {
	ID        int64
	GameID    string
	Player    string // SSH user or local login, may be empty
	Result    core.GameResult
	Level     int // Levels cleared, including the final one
	CreatedAt time.Time
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
// Times are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id, id DESC);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(game_id, elapsed_ms ASC);
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

// SaveResult records a won round and returns the ID of the inserted record.
// A zero CreatedAt is stamped with the current time.
func (s *Store) SaveResult(entry ResultEntry) (int64, error) {
	if entry.GameID == "" {
		return 0, fmt.Errorf("storage: cannot save result: empty game id")
	}
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := s.db.Exec(
		"INSERT INTO results (game_id, player, elapsed_ms, level, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.GameID, entry.Player, entry.Result.Duration().Milliseconds(), entry.Level, created.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Results returns the latest results for a game, most recent first.
func (s *Store) Results(gameID string, limit int) ([]ResultEntry, error) {
	return s.query(
		`SELECT id, game_id, player, elapsed_ms, level, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// BestResults returns the fastest results for a game. Ties keep save order.
func (s *Store) BestResults(gameID string, limit int) ([]ResultEntry, error) {
	return s.query(
		`SELECT id, game_id, player, elapsed_ms, level, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) query(q, gameID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(q, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var (
			e         ResultEntry
			elapsedMS int64
			createdMS int64
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &elapsedMS, &e.Level, &createdMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Result = core.NewGameResult(time.Duration(elapsedMS) * time.Millisecond)
		e.CreatedAt = time.UnixMilli(createdMS)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Wins       int
	Best       core.GameResult
	Average    core.GameResult
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific game.
// A game without results reports zero wins.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var (
		best, last sql.NullInt64
		avg        sql.NullFloat64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(elapsed_ms), AVG(elapsed_ms), MAX(created_at)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Wins, &best, &avg, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	if best.Valid {
		stats.Best = core.NewGameResult(time.Duration(best.Int64) * time.Millisecond)
	}
	if avg.Valid {
		stats.Average = core.NewGameResult(time.Duration(avg.Float64 * float64(time.Millisecond)))
	}
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}
	return stats, nil
}

// AllStats retrieves statistics for every game that has results.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MIN(elapsed_ms), AVG(elapsed_ms), MAX(created_at)
		 FROM results
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var (
			st         GameStats
			best, last int64
			avg        float64
		)
		if err := rows.Scan(&st.GameID, &st.Wins, &best, &avg, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Best = core.NewGameResult(time.Duration(best) * time.Millisecond)
		st.Average = core.NewGameResult(time.Duration(avg * float64(time.Millisecond)))
		st.LastPlayed = time.UnixMilli(last)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
