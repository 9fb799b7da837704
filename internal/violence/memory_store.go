package violence

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
	order   []string
}

// NewMemoryStore creates an in-memory report store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*Report)}
}

func (s *MemoryStore) Create(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyReport(r)
	s.reports[r.ID] = cp
	s.order = append(s.order, r.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return copyReport(r), nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status Status, limit int) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var result []*Report
	for i := len(s.order) - 1; i >= 0 && len(result) < limit; i-- {
		r := s.reports[s.order[i]]
		if status == "" || r.Status == status {
			result = append(result, copyReport(r))
		}
	}
	return result, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status Status, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	r.Status = status
	r.UpdatedAt = updatedAt
	return nil
}

func copyReport(r *Report) *Report {
	cp := *r
	cp.Assessment.RoutedTo = append([]Agency(nil), r.Assessment.RoutedTo...)
	cp.Assessment.Entities = Entities{
		Locations:     append([]string(nil), r.Assessment.Entities.Locations...),
		Times:         append([]string(nil), r.Assessment.Entities.Times...),
		Persons:       append([]string(nil), r.Assessment.Entities.Persons...),
		Organizations: append([]string(nil), r.Assessment.Entities.Organizations...),
	}
	return &cp
}
