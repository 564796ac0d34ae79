package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"acadreports/pkg/contracts/domain"
)

// MemoryStore is an in-memory implementation of ReportStore
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.StoredReport
}

// NewMemoryStore creates a new in-memory report store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]*domain.StoredReport),
	}
}

// Save stores a new report
func (s *MemoryStore) Save(ctx context.Context, report *domain.StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[report.ID]; exists {
		return fmt.Errorf("%w: %s", ErrReportExists, report.ID)
	}

	reportCopy := *report
	s.reports[report.ID] = &reportCopy
	return nil
}

// Get retrieves a report by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, exists := s.reports[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}

	// Return a copy to prevent external modification
	reportCopy := *report
	return &reportCopy, nil
}

// List returns the newest reports first
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StoredReport, 0, len(s.reports))
	for _, report := range s.reports {
		reportCopy := *report
		result = append(result, &reportCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if limit = normalizeLimit(limit); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a report from the store
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[id]; !exists {
		return fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}

	delete(s.reports, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                   { return nil }
