package http

import (
	"context"

	"acadreports/internal/services"
	"acadreports/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations used by ReportHandler
type ReportServiceInterface interface {
	Upload(ctx context.Context, req services.UploadRequest) (*domain.StoredReport, error)
	History(ctx context.Context, limit int) ([]domain.HistoryItem, error)
	Get(ctx context.Context, id string) (*domain.StoredReport, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id, format string) (*services.ExportedReport, error)
	Kinds() []services.ReportKindInfo
}

// HealthServiceInterface defines the health operations used by HealthHandler
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	Ready(ctx context.Context) error
}
