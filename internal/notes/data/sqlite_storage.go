package data

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"keepnotes/internal/logs"
)

// SQLiteStorage keeps the blob as one row of a key/value table, the way a
// browser keeps it in localStorage.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStorage{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStorage) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`)
	return err
}

func (s *SQLiteStorage) Load() []Note {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, StorageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return []Note{}
	}
	if err != nil {
		logs.Logger.Printf("Failed to query %s: %v", StorageKey, err)
		return []Note{}
	}
	return decodeOrEmpty([]byte(value), "sqlite key "+StorageKey)
}

func (s *SQLiteStorage) Save(notes []Note) error {
	raw, err := EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, StorageKey, string(raw))
	if err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
