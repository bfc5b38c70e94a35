// Package store handles SQLite persistence of player names, history and leaderboards.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/funtext/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	// HistoryLimit is the number of games kept per player.
	HistoryLimit = 5
	// LeaderboardLimit is the number of rows kept per mode.
	LeaderboardLimit = 5

	defaultPlayer = "Player"
	playerNameKey = "player_name"

	// Fixed-width so that dates compare correctly as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store wraps SQLite access for game records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used to date records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers; the game is a single-user program.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY,
			player_key TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS best_global (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS leaderboard (
			mode TEXT NOT NULL,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			date TEXT NOT NULL,
			PRIMARY KEY (mode, player)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_player_key ON history(player_key, id);`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_mode_score ON leaderboard(mode, score);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePlayerName remembers the last player name.
func (s *Store) SavePlayerName(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		playerNameKey, strings.TrimSpace(name))
	return err
}

// LoadPlayerName returns the last saved player name, or "" when unset.
func (s *Store) LoadPlayerName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, playerNameKey).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// SaveHistory prepends an entry to the player's history and keeps the newest HistoryLimit.
// A zero Date is replaced with the store clock.
func (s *Store) SaveHistory(ctx context.Context, entry model.HistoryEntry) (err error) {
	if strings.TrimSpace(entry.Player) == "" {
		entry.Player = defaultPlayer
	}
	if entry.Date.IsZero() {
		entry.Date = s.now()
	}
	key := PlayerKey(entry.Player)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO history (player_key, player, score, difficulty, date) VALUES (?, ?, ?, ?, ?)`,
		key, entry.Player, clampScore(entry.Score), entry.Difficulty, formatTime(entry.Date),
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM history
		 WHERE player_key = ? AND id NOT IN (
			SELECT id FROM history WHERE player_key = ? ORDER BY id DESC LIMIT ?
		 )`,
		key, key, HistoryLimit,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadHistory returns the player's most recent games, newest first.
func (s *Store) LoadHistory(ctx context.Context, player string) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, score, difficulty, date FROM history
		 WHERE player_key = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		PlayerKey(player), HistoryLimit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var date string
		if err := rows.Scan(&entry.Player, &entry.Score, &entry.Difficulty, &date); err != nil {
			return nil, err
		}
		parsed, err := parseTime(date)
		if err != nil {
			return nil, err
		}
		entry.Date = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPlayers returns the names of players with history, most recently active first.
func (s *Store) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player FROM history h
		 WHERE id = (SELECT MAX(id) FROM history WHERE player_key = h.player_key)
		 ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var players []string
	for rows.Next() {
		var player string
		if err := rows.Scan(&player); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// SaveBestGlobal stores the result as the global best when it strictly beats the current one.
// It reports whether the record was replaced.
func (s *Store) SaveBestGlobal(ctx context.Context, player string, score int) (bool, error) {
	if strings.TrimSpace(player) == "" {
		player = defaultPlayer
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO best_global (id, player, score, date) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET player = excluded.player, score = excluded.score, date = excluded.date
		 WHERE excluded.score > best_global.score`,
		player, clampScore(score), formatTime(s.now()))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LoadBestGlobal returns the global best record, or nil when none exists.
func (s *Store) LoadBestGlobal(ctx context.Context) (*model.BestRecord, error) {
	var best model.BestRecord
	var date string
	err := s.db.QueryRowContext(ctx, `SELECT player, score, date FROM best_global WHERE id = 1`).
		Scan(&best.Player, &best.Score, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	parsed, err := parseTime(date)
	if err != nil {
		return nil, err
	}
	best.Date = parsed
	return &best, nil
}

// SaveLeaderboard upserts the player's score in the mode table, keeping the higher score,
// and trims the table to the top LeaderboardLimit rows.
func (s *Store) SaveLeaderboard(ctx context.Context, mode model.Mode, player string, score int) (err error) {
	player = strings.TrimSpace(player)
	if player == "" {
		player = defaultPlayer
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO leaderboard (mode, player, score, date) VALUES (?, ?, ?, ?)
		 ON CONFLICT(mode, player) DO UPDATE SET score = excluded.score, date = excluded.date
		 WHERE excluded.score > leaderboard.score`,
		string(mode), player, clampScore(score), formatTime(s.now()),
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM leaderboard
		 WHERE mode = ? AND player NOT IN (
			SELECT player FROM leaderboard WHERE mode = ? ORDER BY score DESC, date ASC LIMIT ?
		 )`,
		string(mode), string(mode), LeaderboardLimit,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadLeaderboard returns the mode table ordered by score descending.
func (s *Store) LoadLeaderboard(ctx context.Context, mode model.Mode) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, score, date FROM leaderboard
		 WHERE mode = ?
		 ORDER BY score DESC, date ASC
		 LIMIT ?`,
		string(mode), LeaderboardLimit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var entry model.LeaderboardEntry
		var date string
		if err := rows.Scan(&entry.Player, &entry.Score, &date); err != nil {
			return nil, err
		}
		parsed, err := parseTime(date)
		if err != nil {
			return nil, err
		}
		entry.Date = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// PlayerKey derives the history key of a player: trimmed, whitespace runs joined by "_".
func PlayerKey(player string) string {
	fields := strings.Fields(player)
	if len(fields) == 0 {
		return defaultPlayer
	}
	return strings.Join(fields, "_")
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
