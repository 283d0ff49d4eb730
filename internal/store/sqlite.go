// ABOUTME: SQLite implementation of the JournalStore interface using modernc.org/sqlite
// ABOUTME: Provides journal persistence with automatic schema creation and permission self-healing

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements JournalStore against a single local database
// file. The zero-value connection is nil until Initialize succeeds;
// every other operation checks that first.
type SQLiteStore struct {
	path   string
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore returns a store for the database file at path. No
// file or directory is touched until Initialize is called.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:   path,
		logger: slog.Default().With("component", "store"),
	}
}

// Initialize ensures the storage directory and database file exist,
// self-heals file permissions, creates the schema, and probes the
// connection. It is idempotent: once the connection is live,
// subsequent calls return nil immediately.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &StorageError{Op: "initialize", Err: fmt.Errorf("creating database directory: %w", err)}
	}

	if err := s.healPermissions(); err != nil {
		return &StorageError{Op: "initialize", Err: err}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return &StorageError{Op: "initialize", Err: fmt.Errorf("opening database: %w", err)}
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return &StorageError{Op: "initialize", Err: fmt.Errorf("enabling WAL mode: %w", err)}
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return &StorageError{Op: "initialize", Err: fmt.Errorf("enabling foreign keys: %w", err)}
	}

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return &StorageError{Op: "initialize", Err: fmt.Errorf("creating schema: %w", err)}
	}

	// Liveness probe before declaring the connection live.
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		db.Close()
		return &StorageError{Op: "initialize", Err: fmt.Errorf("probing database: %w", err)}
	}

	s.db = db
	s.logger.Info("SQLite store initialized", "path", s.path)
	return nil
}

// healPermissions restores read/write access to an existing database
// file that has become unreadable or unwritable.
func (s *SQLiteStore) healPermissions() error {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking database file: %w", err)
	}

	if info.Mode().Perm()&0600 == 0600 {
		return nil
	}

	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("restoring database file permissions: %w", err)
	}
	s.logger.Warn("restored database file permissions", "path", s.path)
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS journals (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			is_published BOOLEAN DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_journals_updated ON journals(updated_at DESC);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection. The store can be
// re-initialized afterwards.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("closing SQLite store")
	err := s.db.Close()
	s.db = nil
	return err
}

// isConstraintViolation checks if the error is a SQLite constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "NOT NULL constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// CreateJournal inserts a new journal row. Timestamps are assigned
// here and written back into j. Returns ErrConstraint (wrapped) when
// the id collides with an existing row or the title is null.
func (s *SQLiteStore) CreateJournal(ctx context.Context, j *Journal) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	now := time.Now().UTC().Truncate(time.Second)
	j.CreatedAt = now
	j.UpdatedAt = now

	query := `
		INSERT INTO journals (id, title, content, created_at, updated_at, is_published)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		j.ID,
		nullString(j.Title),
		j.Content,
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
		j.IsPublished,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return &StorageError{Op: "create", JournalID: j.ID, Err: fmt.Errorf("%w: %v", ErrConstraint, err)}
		}
		return &StorageError{Op: "create", JournalID: j.ID, Err: err}
	}

	s.logger.Debug("created journal", "id", j.ID, "title", j.Title)
	return nil
}

// GetJournal retrieves a journal by id, or (nil, nil) when no row
// matches. Not-found is a normal outcome, not an error.
func (s *SQLiteStore) GetJournal(ctx context.Context, id string) (*Journal, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, title, content, created_at, updated_at, is_published
		FROM journals
		WHERE id = ?
	`

	j, err := scanJournal(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", JournalID: id, Err: err}
	}
	return j, nil
}

// ListJournals returns all journals ordered by most recently touched
// first. An empty slice is a valid result.
func (s *SQLiteStore) ListJournals(ctx context.Context) ([]*Journal, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, title, content, created_at, updated_at, is_published
		FROM journals
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	var journals []*Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, &StorageError{Op: "list", Err: fmt.Errorf("scanning journal row: %w", err)}
		}
		journals = append(journals, j)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Err: fmt.Errorf("iterating journal rows: %w", err)}
	}

	return journals, nil
}

// UpdateJournal replaces title and content for the row matching j.ID,
// refreshing updated_at. A missing id affects zero rows, silently.
func (s *SQLiteStore) UpdateJournal(ctx context.Context, j *Journal) (int64, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	j.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE journals
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		j.Title,
		j.Content,
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return 0, &StorageError{Op: "update", JournalID: j.ID, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "update", JournalID: j.ID, Err: fmt.Errorf("getting rows affected: %w", err)}
	}

	s.logger.Debug("updated journal", "id", j.ID, "rows", affected)
	return affected, nil
}

// DeleteJournal removes the row matching id. A missing id affects
// zero rows, silently. No tombstone is kept.
func (s *SQLiteStore) DeleteJournal(ctx context.Context, id string) (int64, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id)
	if err != nil {
		return 0, &StorageError{Op: "delete", JournalID: id, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "delete", JournalID: id, Err: fmt.Errorf("getting rows affected: %w", err)}
	}

	s.logger.Debug("deleted journal", "id", id, "rows", affected)
	return affected, nil
}

// AutoSaveJournal upserts a journal: inserts when the id is absent,
// otherwise replaces title, content, and updated_at. created_at is
// preserved on conflict, so repeated identical saves leave one row
// whose updated_at reflects only the latest call.
func (s *SQLiteStore) AutoSaveJournal(ctx context.Context, j *Journal) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	now := time.Now().UTC().Truncate(time.Second)
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now

	query := `
		INSERT INTO journals (id, title, content, created_at, updated_at, is_published)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		j.ID,
		nullString(j.Title),
		j.Content,
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
		j.IsPublished,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return &StorageError{Op: "autosave", JournalID: j.ID, Err: fmt.Errorf("%w: %v", ErrConstraint, err)}
		}
		return &StorageError{Op: "autosave", JournalID: j.ID, Err: err}
	}

	s.logger.Debug("auto-saved journal", "id", j.ID)
	return nil
}

// nullString returns nil for empty strings so NOT NULL columns reject
// them at the storage layer, otherwise the string itself
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanner abstracts sql.Row and sql.Rows for scanJournal
type scanner interface {
	Scan(dest ...any) error
}

func scanJournal(row scanner) (*Journal, error) {
	var j Journal
	var content sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&j.ID, &j.Title, &content, &createdAtStr, &updatedAtStr, &j.IsPublished)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		j.Content = content.String
	}

	j.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	j.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &j, nil
}

// Ensure SQLiteStore implements JournalStore interface
var _ JournalStore = (*SQLiteStore)(nil)
