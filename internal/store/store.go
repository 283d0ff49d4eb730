// ABOUTME: JournalStore interface and data types for daybook persistence
// ABOUTME: Defines the Journal struct, error taxonomy, and the store contract

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotInitialized is returned by every operation attempted before
// Initialize has succeeded (or after Close).
var ErrNotInitialized = errors.New("store not initialized")

// ErrConstraint is returned when an insert violates a schema
// constraint: duplicate id or missing title.
var ErrConstraint = errors.New("constraint violation")

// Journal represents a single diary entry. Content holds the
// serialized text form; the gateway owns the structure transform.
type Journal struct {
	ID          string
	Title       string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsPublished bool
}

// StorageError carries the failing operation and entity id alongside
// the underlying error. Context is attached once here, at the origin,
// rather than re-wrapped and re-logged at every layer.
type StorageError struct {
	Op        string
	JournalID string
	Err       error
}

func (e *StorageError) Error() string {
	if e.JournalID == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s journal %s: %v", e.Op, e.JournalID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// JournalStore defines the persistence contract for journal entries.
//
// Mutating operations that address a row by id affect zero rows when
// the id is absent; only CreateJournal treats a missing target as a
// failure (it has no target). Reads never fail on not-found.
type JournalStore interface {
	// Initialize prepares the store for use. It is idempotent: once a
	// connection is live, subsequent calls are no-ops.
	Initialize(ctx context.Context) error

	// CreateJournal inserts a new row. CreatedAt and UpdatedAt are
	// assigned by the store and written back into j.
	CreateJournal(ctx context.Context, j *Journal) error

	// GetJournal returns the matching row, or (nil, nil) when no row
	// matches.
	GetJournal(ctx context.Context, id string) (*Journal, error)

	// ListJournals returns all rows ordered by updated_at descending.
	ListJournals(ctx context.Context) ([]*Journal, error)

	// UpdateJournal replaces title and content for the row matching
	// j.ID, refreshing updated_at. Returns the number of rows
	// affected; zero when the id does not exist.
	UpdateJournal(ctx context.Context, j *Journal) (int64, error)

	// DeleteJournal removes the row matching id. Returns the number of
	// rows affected; zero when the id does not exist.
	DeleteJournal(ctx context.Context, id string) (int64, error)

	// AutoSaveJournal upserts: inserts when the id is absent,
	// otherwise replaces title, content, and updated_at, preserving
	// created_at.
	AutoSaveJournal(ctx context.Context, j *Journal) error

	// Close releases the database handle.
	Close() error
}
