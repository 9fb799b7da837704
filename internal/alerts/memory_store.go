package alerts

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts map[string]*CrisisAlert
}

// NewMemoryStore creates an empty in-memory alert store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{alerts: make(map[string]*CrisisAlert)}
}

func (s *MemoryStore) Create(_ context.Context, alert *CrisisAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[alert.ID] = copyAlert(alert)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*CrisisAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[id]
	if !ok {
		return nil, ErrAlertNotFound
	}
	return copyAlert(alert), nil
}

func (s *MemoryStore) ListPending(_ context.Context, limit int) ([]*CrisisAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]*CrisisAlert, 0)
	for _, alert := range s.alerts {
		if alert.Status == StatusPending {
			pending = append(pending, copyAlert(alert))
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *MemoryStore) Update(_ context.Context, alert *CrisisAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[alert.ID]; !ok {
		return ErrAlertNotFound
	}
	s.alerts[alert.ID] = copyAlert(alert)
	return nil
}

func copyAlert(alert *CrisisAlert) *CrisisAlert {
	dup := *alert
	if alert.AcknowledgedAt != nil {
		t := *alert.AcknowledgedAt
		dup.AcknowledgedAt = &t
	}
	return &dup
}
