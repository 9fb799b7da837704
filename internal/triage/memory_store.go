package triage

import (
	"context"
	"sync"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments []*Assessment
}

// NewMemoryStore creates an in-memory assessment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, a *Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments = append(s.assessments, copyAssessment(a))
	return nil
}

func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]*Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var result []*Assessment
	for i := len(s.assessments) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, copyAssessment(s.assessments[i]))
	}
	return result, nil
}

// copyAssessment deep-copies the maps and slice so stored assessments stay
// immutable even if a caller mutates its copy.
func copyAssessment(a *Assessment) *Assessment {
	cp := *a
	cp.CategoryScores = make(CategoryScores, len(a.CategoryScores))
	for k, v := range a.CategoryScores {
		cp.CategoryScores[k] = v
	}
	cp.CategoryLevels = make(map[lexicon.Category]CategoryLevel, len(a.CategoryLevels))
	for k, v := range a.CategoryLevels {
		cp.CategoryLevels[k] = v
	}
	cp.Recommendations = append([]Recommendation(nil), a.Recommendations...)
	return &cp
}
