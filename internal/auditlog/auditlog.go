// Package auditlog persists one append-only row per CLI invocation so an
// operator can review what the tool has been asked to do. Rows are
// queryable by time range, command, outcome, and profile.
package auditlog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/davidjonas/AnyMail/internal/config"
)

// Entry is one recorded invocation.
type Entry struct {
	ID           int64     `db:"id" json:"id"`
	Timestamp    time.Time `db:"ts" json:"ts"`
	Command      string    `db:"command" json:"command"`
	ArgsJSON     string    `db:"args_json" json:"args_json,omitempty"`
	Profile      string    `db:"profile" json:"profile,omitempty"`
	Outcome      string    `db:"outcome" json:"outcome"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	DurationMS   int64     `db:"duration_ms" json:"duration_ms"`
}

// Query filters log rows. Zero values mean "no filter".
type Query struct {
	Since   time.Time
	Until   time.Time
	Command string
	Outcome string
	Profile string
	Limit   int
	Offset  int
}

// Store is a handle on the SQLite log database.
type Store struct {
	db *sqlx.DB
}

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
			CREATE TABLE IF NOT EXISTS cli_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				ts TEXT NOT NULL,
				command TEXT NOT NULL,
				args_json TEXT NOT NULL DEFAULT '',
				profile TEXT NOT NULL DEFAULT '',
				outcome TEXT NOT NULL,
				error_message TEXT NOT NULL DEFAULT '',
				duration_ms INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_cli_logs_ts ON cli_logs(ts);
			CREATE INDEX IF NOT EXISTS idx_cli_logs_command ON cli_logs(command);
			CREATE INDEX IF NOT EXISTS idx_cli_logs_outcome ON cli_logs(outcome);
			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}

// Open opens (or creates) the log database in the config directory.
func Open() (*Store, error) {
	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "anymail.db"))
}

// OpenPath opens (or creates) the log database at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log db: %w", err)
	}

	// WAL keeps concurrent invocations from tripping over each other.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("failed to check schema version table: %w", err)
	}
	if tableCount > 0 {
		if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// Insert appends one entry and returns its row id.
func (s *Store) Insert(ctx context.Context, e Entry) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cli_logs (ts, command, args_json, profile, outcome, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(time.RFC3339), e.Command, e.ArgsJSON,
		e.Profile, e.Outcome, e.ErrorMessage, e.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to insert log entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// List returns entries matching the query, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if !q.Since.IsZero() {
		conditions = append(conditions, "ts >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		conditions = append(conditions, "ts <= ?")
		args = append(args, q.Until.UTC().Format(time.RFC3339))
	}
	if q.Command != "" {
		conditions = append(conditions, "command = ?")
		args = append(args, q.Command)
	}
	if q.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, q.Outcome)
	}
	if q.Profile != "" {
		conditions = append(conditions, "profile = ?")
		args = append(args, q.Profile)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf(`
		SELECT id, ts, command, args_json, profile, outcome, error_message, duration_ms
		FROM cli_logs
		WHERE %s
		ORDER BY ts DESC, id DESC
		LIMIT ? OFFSET ?`, strings.Join(conditions, " AND ")), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Command, &e.ArgsJSON, &e.Profile,
			&e.Outcome, &e.ErrorMessage, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log entries: %w", err)
	}
	return entries, nil
}
