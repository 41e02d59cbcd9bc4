package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tgienger/taskflow/internal/storage"
)

//go:embed schema.sql
var schema string

// FileName is the database file created inside the data directory
const FileName = "taskflow.db"

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New opens (creating if needed) the database in dataDir and initializes the schema
func New(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return Open(filepath.Join(dataDir, FileName))
}

// Open opens the database file at path and initializes the schema
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db}, nil
}

// GetSetting retrieves a setting value by key. ok is false when the key
// was never set.
func (db *DB) GetSetting(key string) (value string, ok bool, err error) {
	err = db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// DeleteSetting removes a setting
func (db *DB) DeleteSetting(key string) error {
	_, err := db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}

// Read implements storage.Backend
func (db *DB) Read(key string) ([]byte, error) {
	value, ok, err := db.GetSetting(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return []byte(value), nil
}

// Write implements storage.Backend
func (db *DB) Write(key string, value []byte) error {
	return db.SetSetting(key, string(value))
}

// Delete implements storage.Backend
func (db *DB) Delete(key string) error {
	return db.DeleteSetting(key)
}
