package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// InMemory keeps the cache for the life of the process only.
const InMemory = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS Archive (
  digest TEXT PRIMARY KEY,
  loaded_at DATETIME NOT NULL,
  plays INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts INTEGER NOT NULL,
  year INTEGER NOT NULL,
  track TEXT,
  artist TEXT,
  episode TEXT,
  ms_played INTEGER NOT NULL,
  track_uri TEXT
);
`

// Store caches the normalized dataset of the most recently loaded archive.
type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}
