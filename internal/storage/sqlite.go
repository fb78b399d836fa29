// Package storage provides SQLite-based persistence for saved games and results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var _ SnapshotStore = (*Store)(nil)

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
		CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			layout TEXT NOT NULL,
			players TEXT NOT NULL,
			status TEXT NOT NULL,
			turn INTEGER NOT NULL DEFAULT 0,
			snapshot TEXT NOT NULL,
			rules TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			layout TEXT NOT NULL,
			winner TEXT NOT NULL,
			players TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_winner ON results(winner);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases created before rules were saved lack the column.
	return s.addColumnIfMissing("saves", "rules", "TEXT NOT NULL DEFAULT ''")
}

func (s *Store) addColumnIfMissing(table, column, def string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dflt       any
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primaryKey); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores g under its name, replacing any previous save with that name.
func (s *Store) SaveGame(ctx context.Context, g SavedGame) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptySaveName
	}

	data, err := json.Marshal(g.Snapshot)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}
	rules, err := json.Marshal(g.Rules)
	if err != nil {
		return fmt.Errorf("storage: cannot encode rules: %w", err)
	}

	snap := g.Snapshot
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (name, layout, players, status, turn, snapshot, rules, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   layout = excluded.layout,
		   players = excluded.players,
		   status = excluded.status,
		   turn = excluded.turn,
		   snapshot = excluded.snapshot,
		   rules = excluded.rules,
		   updated_at = excluded.updated_at`,
		g.Name, g.Layout, joinNames(snapshotNames(snap)), snap.Status, snap.Turn, string(data), string(rules),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame retrieves a saved game by name.
// Returns ErrSaveNotFound if no save has that name.
func (s *Store) LoadGame(ctx context.Context, name string) (SavedGame, error) {
	var (
		saved     SavedGame
		data      string
		rules     string
		updatedAt any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, layout, snapshot, rules, updated_at FROM saves WHERE name = ?`,
		name,
	).Scan(&saved.Name, &saved.Layout, &data, &rules, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	if err != nil {
		return SavedGame{}, fmt.Errorf("storage: cannot query save: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &saved.Snapshot); err != nil {
		return SavedGame{}, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	if rules != "" {
		if err := json.Unmarshal([]byte(rules), &saved.Rules); err != nil {
			return SavedGame{}, fmt.Errorf("storage: cannot decode rules: %w", err)
		}
	}
	saved.UpdatedAt = parseTime(updatedAt)

	return saved, nil
}

// ListSaves returns every save, most recently updated first.
func (s *Store) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, layout, players, status, turn, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var (
			info      SaveInfo
			players   string
			updatedAt any
		)
		if err := rows.Scan(&info.Name, &info.Layout, &players, &info.Status, &info.Turn, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Players = splitNames(players)
		info.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes a saved game.
// Returns ErrSaveNotFound if no save has that name.
func (s *Store) DeleteSave(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	return nil
}

// RecordResult stores a finished game.
// Returns the ID of the inserted record.
func (s *Store) RecordResult(ctx context.Context, r GameResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, layout, winner, players, turns)
		 VALUES (?, ?, ?, ?, ?)`,
		r.SessionID, r.Layout, r.Winner, joinNames(r.Players), r.Turns,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recent finished games.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, layout, winner, players, turns, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var (
			r         GameResult
			players   string
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Layout, &r.Winner, &players, &r.Turns, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Players = splitNames(players)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Leaderboard returns win counts per player name, most wins first.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, COUNT(*), COALESCE(MIN(turns), 0), MAX(created_at)
		 FROM results
		 GROUP BY winner
		 ORDER BY COUNT(*) DESC, winner ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var (
			e       LeaderboardEntry
			lastWon any
		)
		if err := rows.Scan(&e.Name, &e.Wins, &e.FewestTurns, &lastWon); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		e.LastWon = parseTime(lastWon)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
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
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
