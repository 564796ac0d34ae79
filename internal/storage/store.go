// Package storage persists extracted reports.
//
// Three ReportStore implementations are provided: MemoryStore for tests and the
// CLI, GormStore for sqlite or postgres, and CachedStore, a redis read-through
// decorator around either of them.
package storage

import (
	"context"
	"errors"

	"acadreports/pkg/contracts/domain"
)

// DefaultHistoryLimit caps history listings when the caller gives no limit
const DefaultHistoryLimit = 100

var (
	// ErrReportNotFound is returned when no report has the requested id
	ErrReportNotFound = errors.New("report not found")
	// ErrReportExists is returned when saving a report whose id is taken
	ErrReportExists = errors.New("report already exists")
)

// ReportStore is the sink extraction results are written to
type ReportStore interface {
	Save(ctx context.Context, report *domain.StoredReport) error
	Get(ctx context.Context, id string) (*domain.StoredReport, error)
	// List returns up to limit reports, newest first
	List(ctx context.Context, limit int) ([]*domain.StoredReport, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}
