// Package store persists finished and in-progress games to SQLite so
// they can be listed, reloaded and replayed across restarts.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"acquire/session"
	"acquire/wire"
)

// Store saves and reloads game records in a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		name       TEXT PRIMARY KEY,
		turns      INTEGER NOT NULL,
		record     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save writes the game's replayable record, replacing any previous save
// under the same name.
func (s *Store) Save(g session.Game) error {
	record, err := wire.NewRecord(g)
	if err != nil {
		return fmt.Errorf("build record: %w", err)
	}
	data, err := wire.MarshalRecord(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.Exec(
		`INSERT INTO games (name, turns, record, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		 	turns = excluded.turns,
		 	record = excluded.record,
		 	updated_at = excluded.updated_at`,
		g.ID(), g.Turn(), string(data), now,
	)
	return err
}

// Load replays the saved game with the given name.
func (s *Store) Load(name string) (*session.Session, error) {
	var data string
	err := s.db.QueryRow(`SELECT record FROM games WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no saved game named %q", name)
	}
	if err != nil {
		return nil, err
	}
	record, err := wire.UnmarshalRecord([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return wire.Replay(record)
}

// SavedGame is a row in the listing of saved games.
type SavedGame struct {
	Name      string
	Turns     int
	UpdatedAt time.Time
}

// List returns all saved games, most recently updated first.
func (s *Store) List() ([]SavedGame, error) {
	rows, err := s.db.Query(`SELECT name, turns, updated_at FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []SavedGame
	for rows.Next() {
		var g SavedGame
		var updated string
		if err := rows.Scan(&g.Name, &g.Turns, &updated); err != nil {
			return nil, err
		}
		if g.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at for %s: %w", g.Name, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Delete removes a saved game. Deleting an unknown name is not an error.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM games WHERE name = ?`, name)
	return err
}
