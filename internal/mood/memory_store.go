package mood

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string][]*Event // keyed by user ID
}

// NewMemoryStore creates an empty in-memory mood store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]*Event)}
}

func (s *MemoryStore) Append(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := *event
	s.events[event.UserID] = append(s.events[event.UserID], &dup)
	return nil
}

func (s *MemoryStore) ListRecentByUser(_ context.Context, userID string, limit int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.events[userID]
	result := make([]*Event, 0, len(history))
	for _, e := range history {
		dup := *e
		result = append(result, &dup)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
