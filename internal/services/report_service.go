package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"acadreports/internal/dataprocessing"
	"acadreports/internal/exporter"
	"acadreports/internal/infrastructure"
	"acadreports/internal/reports"
	"acadreports/internal/storage"
	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
	"acadreports/pkg/contracts/events"
)

// Event types published to websocket clients
const (
	EventReportCreated = events.ReportCreated
	EventReportDeleted = events.ReportDeleted
)

// Extraction outcomes recorded in metrics
const (
	OutcomeSuccess     = "success"
	OutcomeDecodeError = "decode_error"
	OutcomeError       = "error"
)

// TableDecoder turns uploaded bytes into a table
type TableDecoder interface {
	Decode(ctx context.Context, filename string, content []byte) (*table.Table, error)
}

// ExtractionMetrics records upload outcomes
type ExtractionMetrics interface {
	RecordExtraction(ctx context.Context, kind, outcome string, duration time.Duration, records int)
	RecordDecodeFailure(ctx context.Context, kind string)
}

// WebSocketHub defines the interface for WebSocket broadcasting
type WebSocketHub interface {
	Broadcast(messageType string, data interface{})
}

// UploadRequest is one spreadsheet submitted for extraction
type UploadRequest struct {
	Kind           string
	Period         string
	Filename       string
	Content        []byte
	CreatedBy      string
	CreatedByEmail string
}

// ReportKindInfo describes a report kind for the report-types listing
type ReportKindInfo struct {
	Kind          domain.ReportKind `json:"id"`
	Label         string            `json:"label"`
	AcceptsPeriod bool              `json:"accepts_period"`
}

// ExportedReport is a rendered download
type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService runs uploads through decode and extraction and keeps the results
type ReportService struct {
	store        storage.ReportStore
	decoder      TableDecoder
	metrics      ExtractionMetrics
	hub          WebSocketHub
	historyLimit int
	logger       *slog.Logger
	now          func() time.Time
}

// ReportServiceOption configures a ReportService
type ReportServiceOption func(*ReportService)

// WithMetrics records extraction metrics
func WithMetrics(m ExtractionMetrics) ReportServiceOption {
	return func(s *ReportService) { s.metrics = m }
}

// WithHub publishes report events
func WithHub(hub WebSocketHub) ReportServiceOption {
	return func(s *ReportService) { s.hub = hub }
}

// WithHistoryLimit caps history listings
func WithHistoryLimit(limit int) ReportServiceOption {
	return func(s *ReportService) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// NewReportService creates a report service
func NewReportService(store storage.ReportStore, decoder TableDecoder, logger *slog.Logger, opts ...ReportServiceOption) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ReportService{
		store:        store,
		decoder:      decoder,
		historyLimit: storage.DefaultHistoryLimit,
		logger:       logger.With(slog.String("service", "reports")),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload decodes, extracts and stores one report
func (s *ReportService) Upload(ctx context.Context, req UploadRequest) (*domain.StoredReport, error) {
	kind, err := reports.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	var period domain.Period
	if kind.AcceptsPeriod() {
		if period, err = reports.ParsePeriod(req.Period); err != nil {
			return nil, err
		}
	}
	if len(req.Content) == 0 {
		return nil, ErrEmptyUpload
	}

	ctx, span := infrastructure.StartSpan(ctx, "reports.upload",
		attribute.String("report.kind", string(kind)),
		attribute.String("report.filename", req.Filename),
		attribute.Int("report.bytes", len(req.Content)),
	)
	defer span.End()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := s.decoder.Decode(ctx, req.Filename, req.Content)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		var decodeErr *dataprocessing.DecodeError
		if errors.As(err, &decodeErr) {
			s.recordDecodeFailure(ctx, string(kind))
			s.recordExtraction(ctx, string(kind), OutcomeDecodeError, time.Since(start), 0)
			s.logger.WarnContext(ctx, "uploaded file could not be decoded",
				slog.String("filename", req.Filename),
				slog.Int("attempts", len(decodeErr.Attempts)),
			)
			return nil, err
		}
		s.recordExtraction(ctx, string(kind), OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("failed to decode %s: %w", req.Filename, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, trace, err := reports.Extract(kind, t, reports.Options{Period: period})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.recordExtraction(ctx, string(kind), OutcomeError, time.Since(start), 0)
		return nil, err
	}
	elapsed := time.Since(start)

	s.logger.DebugContext(ctx, "report extracted", slog.Any("trace", trace))

	stored := &domain.StoredReport{
		ID:             uuid.New().String(),
		ReportType:     kind,
		Filename:       req.Filename,
		Result:         result,
		Timestamp:      s.now().UTC(),
		CreatedBy:      req.CreatedBy,
		CreatedByEmail: req.CreatedByEmail,
	}

	if err := s.store.Save(ctx, stored); err != nil {
		infrastructure.RecordError(ctx, err)
		s.recordExtraction(ctx, string(kind), OutcomeError, elapsed, 0)
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.recordExtraction(ctx, string(kind), OutcomeSuccess, elapsed, result.Count())
	s.broadcast(EventReportCreated, domain.NewHistoryItem(stored))

	s.logger.InfoContext(ctx, "report created",
		slog.String("report_id", stored.ID),
		slog.String("report_type", string(kind)),
		slog.String("filename", req.Filename),
		slog.Int("records", result.Count()),
		slog.Duration("duration", elapsed),
	)

	return stored, nil
}

// History lists the newest reports. A limit outside (0, cap] uses the cap.
func (s *ReportService) History(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	stored, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	items := make([]domain.HistoryItem, 0, len(stored))
	for _, r := range stored {
		items = append(items, domain.NewHistoryItem(r))
	}
	return items, nil
}

// Get returns one stored report
func (s *ReportService) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a stored report and announces it
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast(EventReportDeleted, events.ReportDeletedData{ID: id})
	s.logger.InfoContext(ctx, "report deleted", slog.String("report_id", id))
	return nil
}

// Export renders a stored report as csv or xlsx
func (s *ReportService) Export(ctx context.Context, id, format string) (*ExportedReport, error) {
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExport, format)
	}
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, stored.Result, f); err != nil {
		return nil, fmt.Errorf("failed to export report %s: %w", id, err)
	}
	return &ExportedReport{
		Filename:    exporter.Filename(stored.ReportType, stored.ID, f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Kinds lists every report kind in presentation order
func (s *ReportService) Kinds() []ReportKindInfo {
	out := make([]ReportKindInfo, 0, len(domain.ReportKinds))
	for _, k := range domain.ReportKinds {
		out = append(out, ReportKindInfo{
			Kind:          k,
			Label:         k.Label(),
			AcceptsPeriod: k.AcceptsPeriod(),
		})
	}
	return out
}

func (s *ReportService) recordExtraction(ctx context.Context, kind, outcome string, d time.Duration, records int) {
	if s.metrics != nil {
		s.metrics.RecordExtraction(ctx, kind, outcome, d, records)
	}
}

func (s *ReportService) recordDecodeFailure(ctx context.Context, kind string) {
	if s.metrics != nil {
		s.metrics.RecordDecodeFailure(ctx, kind)
	}
}

func (s *ReportService) broadcast(eventType string, data interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(eventType, data)
	}
}
