package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// New opens or creates the SQLite database at the given path.
// The special path ":memory:" opens a private in-memory database.
func New(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if path != ":memory:" {
		// Ensure directory exists
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One CLI process, one writer
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	db := &DB{conn: conn, path: path}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// SchemaVersion returns the highest applied migration
func (d *DB) SchemaVersion() (int, error) {
	var version int
	err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// LatestSchemaVersion is the version a fully migrated database reports
func LatestSchemaVersion() int {
	return len(migrations)
}

// migrations are applied in order; index+1 is the schema version
var migrations = []string{
	migrationV1,
	migrationV2,
}

// migrate runs the database schema migrations
func (d *DB) migrate() error {
	// Create schema version table
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	version, err := d.SchemaVersion()
	if err != nil {
		return err
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// migrationV1 creates the user preset table
const migrationV1 = `
CREATE TABLE IF NOT EXISTS presets (
    id INTEGER PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    channels INTEGER NOT NULL,
    channel_map TEXT NOT NULL,
    description TEXT,
    rate INTEGER,
    format TEXT,
    properties TEXT,
    created TIMESTAMP NOT NULL,
    updated TIMESTAMP NOT NULL
);
`

// migrationV2 adds the audit log of mutations sent to the audio server
const migrationV2 = `
CREATE TABLE IF NOT EXISTS mutation_events (
    id INTEGER PRIMARY KEY,
    action TEXT NOT NULL,
    target TEXT,
    command TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    output TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mutation_events_time ON mutation_events(timestamp);
CREATE INDEX IF NOT EXISTS idx_mutation_events_action ON mutation_events(action);
`

// PresetRecord is a user preset row
type PresetRecord struct {
	ID          int64
	Name        string
	Channels    int
	ChannelMap  string
	Description string
	Rate        *int
	Format      *string
	Properties  *string
	Created     time.Time
	Updated     time.Time
}

// MutationEvent is one mutation recorded in the audit log
type MutationEvent struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Command   string    `json:"command"`
	ExitCode  int       `json:"exit_code"`
	Output    string    `json:"output,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Mutation actions
const (
	ActionCreate    = "create"
	ActionUnload    = "unload"
	ActionUnloadAll = "unload_all"
)

// nullString maps "" to SQL NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
