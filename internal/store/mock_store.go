// ABOUTME: Mock JournalStore implementation for testing
// ABOUTME: Allows gateway tests to run without SQLite

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockStore is an in-memory JournalStore implementation for testing.
type MockStore struct {
	mu          sync.RWMutex
	initialized bool
	journals    map[string]*Journal // keyed by journal ID

	// FailInitialize makes Initialize return an error, for testing
	// degraded startup.
	FailInitialize bool
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		journals: make(map[string]*Journal),
	}
}

// Initialize marks the store ready.
func (m *MockStore) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInitialize {
		return &StorageError{Op: "initialize", Err: fmt.Errorf("mock initialize failure")}
	}
	m.initialized = true
	return nil
}

// CreateJournal stores a new journal, assigning timestamps.
func (m *MockStore) CreateJournal(ctx context.Context, j *Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if _, exists := m.journals[j.ID]; exists {
		return &StorageError{Op: "create", JournalID: j.ID, Err: fmt.Errorf("%w: duplicate id", ErrConstraint)}
	}
	if j.Title == "" {
		return &StorageError{Op: "create", JournalID: j.ID, Err: fmt.Errorf("%w: null title", ErrConstraint)}
	}

	now := time.Now().UTC().Truncate(time.Second)
	j.CreatedAt = now
	j.UpdatedAt = now

	// Copy to avoid external modification
	cp := *j
	m.journals[j.ID] = &cp
	return nil
}

// GetJournal retrieves a journal by id, or (nil, nil) when absent.
func (m *MockStore) GetJournal(ctx context.Context, id string) (*Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}
	j, ok := m.journals[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

// ListJournals returns all journals ordered by updated_at descending.
func (m *MockStore) ListJournals(ctx context.Context) ([]*Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}

	journals := make([]*Journal, 0, len(m.journals))
	for _, j := range m.journals {
		cp := *j
		journals = append(journals, &cp)
	}
	sort.Slice(journals, func(i, k int) bool {
		return journals[i].UpdatedAt.After(journals[k].UpdatedAt)
	})
	return journals, nil
}

// UpdateJournal replaces title and content for an existing journal.
func (m *MockStore) UpdateJournal(ctx context.Context, j *Journal) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return 0, ErrNotInitialized
	}
	existing, ok := m.journals[j.ID]
	if !ok {
		return 0, nil
	}
	existing.Title = j.Title
	existing.Content = j.Content
	existing.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	j.UpdatedAt = existing.UpdatedAt
	return 1, nil
}

// DeleteJournal removes a journal by id.
func (m *MockStore) DeleteJournal(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return 0, ErrNotInitialized
	}
	if _, ok := m.journals[id]; !ok {
		return 0, nil
	}
	delete(m.journals, id)
	return 1, nil
}

// AutoSaveJournal upserts a journal.
func (m *MockStore) AutoSaveJournal(ctx context.Context, j *Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if j.Title == "" {
		return &StorageError{Op: "autosave", JournalID: j.ID, Err: fmt.Errorf("%w: null title", ErrConstraint)}
	}

	now := time.Now().UTC().Truncate(time.Second)
	if existing, ok := m.journals[j.ID]; ok {
		existing.Title = j.Title
		existing.Content = j.Content
		existing.UpdatedAt = now
		j.CreatedAt = existing.CreatedAt
		j.UpdatedAt = now
		return nil
	}

	j.CreatedAt = now
	j.UpdatedAt = now
	cp := *j
	m.journals[j.ID] = &cp
	return nil
}

// Close marks the store uninitialized again.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = false
	return nil
}

// Ensure MockStore implements JournalStore interface
var _ JournalStore = (*MockStore)(nil)
