// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-fighter/internal/multiplayer"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID         int64
	MatchID    string // Unique; local matches get a generated ID
	Mode       string // "solo", "versus", "online" or "demo"
	Player1    string
	Player2    string
	Winner     int // 0 if no winner, else 1 or 2
	WinnerName string
	Health1    float64
	Health2    float64
	EndReason  string // "Knockout", "Forfeit", "Opponent disconnected", ...
	Ticks      int64
	Duration   int // Duration in seconds
	Seed       int64
	CreatedAt  time.Time
}

// Tally aggregates wins per mode.
type Tally struct {
	Mode       string
	Matches    int
	P1Wins     int
	P2Wins     int
	AvgTicks   float64
	LastPlayed time.Time
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			winner_name TEXT,
			health1 REAL NOT NULL DEFAULT 0,
			health2 REAL NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
		CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches(player1);
		CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches(player2);
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

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	if rec.MatchID == "" {
		rec.MatchID = fmt.Sprintf("%s-%d", rec.Mode, time.Now().UnixNano())
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, player1, player2, winner, winner_name, health1, health2, end_reason, ticks, duration_secs, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Mode,
		rec.Player1,
		rec.Player2,
		rec.Winner,
		rec.WinnerName,
		rec.Health1,
		rec.Health2,
		rec.EndReason,
		rec.Ticks,
		rec.Duration,
		rec.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, mode, player1, player2, winner, winner_name,
	health1, health2, end_reason, ticks, duration_secs, seed, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var rec MatchRecord
	var winnerName sql.NullString
	var createdAt any

	if err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Mode,
		&rec.Player1,
		&rec.Player2,
		&rec.Winner,
		&winnerName,
		&rec.Health1,
		&rec.Health2,
		&rec.EndReason,
		&rec.Ticks,
		&rec.Duration,
		&rec.Seed,
		&createdAt,
	); err != nil {
		return MatchRecord{}, err
	}

	if winnerName.Valid {
		rec.WinnerName = winnerName.String
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
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

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, optionally for one mode.
func (s *Store) RecentMatches(mode string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	return s.queryMatches(query, args...)
}

// PlayerMatchHistory retrieves matches a named player took part in.
func (s *Store) PlayerMatchHistory(player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryMatches(
		`SELECT `+matchColumns+` FROM matches
		 WHERE player1 = ? OR player2 = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, player, limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Tallies returns win counts per mode, ordered by mode name.
func (s *Store) Tallies() ([]Tally, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(ticks), 0),
		        MAX(created_at)
		 FROM matches
		 GROUP BY mode
		 ORDER BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tallies: %w", err)
	}
	defer rows.Close()

	var tallies []Tally
	for rows.Next() {
		var t Tally
		var lastPlayed any
		if err := rows.Scan(&t.Mode, &t.Matches, &t.P1Wins, &t.P2Wins, &t.AvgTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally row: %w", err)
		}
		t.LastPlayed = parseTime(lastPlayed)
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tallies, nil
}

// Wins counts matches a named player won.
func (s *Store) Wins(player string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM matches WHERE winner_name = ?`, player).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	return n, nil
}

// ClearMatches deletes the history of one mode, or everything when mode is empty.
func (s *Store) ClearMatches(mode string) error {
	var err error
	if mode == "" {
		_, err = s.db.Exec("DELETE FROM matches")
	} else {
		_, err = s.db.Exec("DELETE FROM matches WHERE mode = ?", mode)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
// This adapter allows the coordinator to save match results without direct storage dependency.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:    data.MatchID,
		Mode:       "online",
		Player1:    data.Player1,
		Player2:    data.Player2,
		Winner:     data.Winner,
		WinnerName: data.WinnerName,
		Health1:    data.Health1,
		Health2:    data.Health2,
		EndReason:  data.EndReason,
		Ticks:      int64(min(data.Ticks, 1<<62)), //nolint:gosec // clamped
		Duration:   data.DurationSecs,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
