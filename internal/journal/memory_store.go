package journal

import (
	"context"
	"sort"
	"sync"

	"github.com/nmorris876/yaadmind/internal/pagination"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (s *MemoryStore) Create(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return copyEntry(entry), nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string, limit int, before *pagination.Cursor) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entry, 0)
	for _, entry := range s.entries {
		if entry.UserID != userID {
			continue
		}
		if before != nil && !olderThan(entry, before) {
			continue
		}
		result = append(result, copyEntry(entry))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// olderThan reports whether entry sorts strictly after the cursor position
// in the newest-first ordering (created_at, id).
func olderThan(entry *Entry, c *pagination.Cursor) bool {
	if entry.CreatedAt.Equal(c.CreatedAt) {
		return entry.ID < c.ID
	}
	return entry.CreatedAt.Before(c.CreatedAt)
}

func (s *MemoryStore) Update(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return ErrEntryNotFound
	}
	s.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

func copyEntry(entry *Entry) *Entry {
	dup := *entry
	dup.Keywords = append([]string(nil), entry.Keywords...)
	if entry.Assessment != nil {
		a := *entry.Assessment
		dup.Assessment = &a
	}
	return &dup
}
