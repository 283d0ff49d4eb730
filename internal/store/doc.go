// Package store provides persistent storage for daybook using SQLite.
//
// # Architecture
//
// The package is interface-driven: JournalStore defines the contract,
// SQLiteStore implements it against a single local database file, and
// MockStore provides an in-memory implementation for tests.
//
// The database connection is established by Initialize, not by the
// constructor, so a failed startup leaves the process running in a
// degraded state: operations attempted before a successful Initialize
// return ErrNotInitialized.
//
// # Data Model
//
// A single journals table holds diary entries. Content is an opaque
// serialized text blob at this layer; the structure transform lives in
// the gateway. Timestamps are stored as RFC3339 UTC text.
//
// # Errors
//
// Failures are returned as *StorageError with the operation name and
// entity id attached at the origin. ErrConstraint and
// ErrNotInitialized are matchable with errors.Is through the wrap
// chain. Not-found on reads is not an error: GetJournal returns
// (nil, nil) and mutations on absent ids affect zero rows.
package store
