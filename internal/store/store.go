package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// dayFormat is how calendar days are stored in SQLite.
const dayFormat = "2006-01-02"

// Store is the SQLite-backed reservation and tourist store.
type Store struct {
	db *sql.DB
}

// New opens (and if necessary creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Single connection keeps SQLite writes serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema applies the embedded schema.
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the raw connection for transactions and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// day renders a calendar day for storage.
func day(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// dayPtr renders an optional calendar day; nil stays NULL.
func dayPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return day(*t)
}

// parseDayColumn reads a stored calendar day back.
func parseDayColumn(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.UTC)
}

// parseDayColumnPtr reads an optional stored day back.
func parseDayColumnPtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := parseDayColumn(s.String)
	if err != nil {
		return nil
	}
	return &t
}
