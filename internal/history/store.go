package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EntryStatus classifies a journaled per-file outcome.
type EntryStatus string

const (
	StatusMoved   EntryStatus = "moved"
	StatusPlanned EntryStatus = "planned"
	StatusFailed  EntryStatus = "failed"
)

// Session is one journaled organization run.
type Session struct {
	ID         string
	Root       string
	LogPath    string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Failed     int
}

// Entry is one journaled per-file outcome.
type Entry struct {
	SessionID   string
	Source      string
	Category    string
	Destination string
	Status      EntryStatus
	Error       string
	RecordedAt  time.Time
}

// ErrSessionNotFound is returned when a session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Store manages the history journal backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open initializes or connects to the journal at path and applies
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginSession records the start of a run.
func (s *Store) BeginSession(ctx context.Context, session Session) error {
	started := session.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (id, root, log_path, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		session.ID,
		session.Root,
		session.LogPath,
		boolToInt(session.DryRun),
		formatTime(started),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordEntry appends one per-file outcome to a session.
func (s *Store) RecordEntry(ctx context.Context, entry Entry) error {
	recorded := entry.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO session_entries (
            session_id, source_name, category, destination_name, status, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Source,
		entry.Category,
		nullableString(entry.Destination),
		string(entry.Status),
		nullableString(entry.Error),
		formatTime(recorded),
	)
	if err != nil {
		return fmt.Errorf("insert session entry: %w", err)
	}
	return nil
}

// FinishSession stores the final counters of a run.
func (s *Store) FinishSession(ctx context.Context, id string, moved, failed int, finished time.Time) error {
	if finished.IsZero() {
		finished = time.Now()
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET finished_at = ?, moved = ?, failed = ? WHERE id = ?`,
		formatTime(finished),
		moved,
		failed,
		id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// RecentSessions lists the newest sessions first. A non-positive limit
// returns every session.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	query := `SELECT id, root, log_path, dry_run, started_at, finished_at, moved, failed
        FROM sessions ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess     Session
			dryRun   int
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&sess.ID, &sess.Root, &sess.LogPath, &dryRun, &started, &finished, &sess.Moved, &sess.Failed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.DryRun = dryRun != 0
		sess.StartedAt = parseTime(started)
		if finished.Valid {
			sess.FinishedAt = parseTime(finished.String)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Entries returns the per-file outcomes of a session in recording order.
func (s *Store) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM sessions WHERE id = ?", sessionID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, source_name, category, destination_name, status, error_message, recorded_at
        FROM session_entries WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			dest     sql.NullString
			errMsg   sql.NullString
			status   string
			recorded string
		)
		if err := rows.Scan(&entry.SessionID, &entry.Source, &entry.Category, &dest, &status, &errMsg, &recorded); err != nil {
			return nil, fmt.Errorf("scan session entry: %w", err)
		}
		entry.Destination = dest.String
		entry.Error = errMsg.String
		entry.Status = EntryStatus(status)
		entry.RecordedAt = parseTime(recorded)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// timeLayout keeps fractional seconds fixed-width so stored timestamps sort
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
