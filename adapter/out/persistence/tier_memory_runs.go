package persistence

import (
	"context"
	"sync"

	"tier_server/core/domain"
	"tier_server/pkg/apperr"
)

// MemoryRunStore is an in-memory out.RunRepository used when no database is
// configured. History disappears on restart; fine for local development, not
// for production.
type MemoryRunStore struct {
	mu   sync.RWMutex
	runs []*domain.BatchReport
}

// NewMemoryRunStore creates an empty in-memory store.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{}
}

// SaveRun prepends the report; newest first.
func (s *MemoryRunStore) SaveRun(ctx context.Context, report *domain.BatchReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append([]*domain.BatchReport{report}, s.runs...)
	return nil
}

// GetRun retrieves one run by id.
func (s *MemoryRunStore) GetRun(ctx context.Context, id string) (*domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperr.NotFound("run")
}

// ListRuns returns up to limit reports, newest first.
func (s *MemoryRunStore) ListRuns(ctx context.Context, limit int) ([]*domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit > len(s.runs) {
		limit = len(s.runs)
	}
	out := make([]*domain.BatchReport, limit)
	copy(out, s.runs[:limit])
	return out, nil
}
