package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"acadreports/pkg/contracts/domain"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures the report store
type Config struct {
	Driver        string
	DatabaseURL   string
	SQLitePath    string
	SlowThreshold time.Duration
}

// reportRecord is the row layout of the reports table
type reportRecord struct {
	ID             string         `gorm:"primaryKey;size:36"`
	ReportType     string         `gorm:"size:32;index"`
	Filename       string         `gorm:"size:512"`
	Result         datatypes.JSON `gorm:"not null"`
	Timestamp      time.Time      `gorm:"index"`
	CreatedBy      string         `gorm:"size:255"`
	CreatedByEmail string         `gorm:"size:255"`
}

func (reportRecord) TableName() string { return "reports" }

// GormStore keeps reports in sqlite or postgres through gorm
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open returns the store named by cfg.Driver. A database URL always selects
// postgres.
func Open(cfg Config, logger *slog.Logger) (ReportStore, error) {
	driver := cfg.Driver
	if cfg.DatabaseURL != "" {
		driver = DriverPostgres
	}
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		cfg.Driver = driver
		return NewGormStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewGormStore connects to the configured database and migrates the schema
func NewGormStore(cfg Config, logger *slog.Logger) (*GormStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "storage"), slog.String("driver", cfg.Driver))

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", cfg.Driver)
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&reportRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate reports table: %w", err)
	}

	logger.Info("report store ready")
	return &GormStore{db: db, logger: logger}, nil
}

func (s *GormStore) Save(ctx context.Context, report *domain.StoredReport) error {
	rec, err := toRecord(report)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrReportExists, report.ID)
		}
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	var rec reportRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return fromRecord(&rec)
}

func (s *GormStore) List(ctx context.Context, limit int) ([]*domain.StoredReport, error) {
	var recs []reportRecord
	err := s.db.WithContext(ctx).
		Order("timestamp desc").
		Limit(normalizeLimit(limit)).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	out := make([]*domain.StoredReport, 0, len(recs))
	for i := range recs {
		report, err := fromRecord(&recs[i])
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable report",
				slog.String("report_id", recs[i].ID),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, report)
	}
	return out, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&reportRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(report *domain.StoredReport) (*reportRecord, error) {
	result, err := json.Marshal(report.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report result: %w", err)
	}
	return &reportRecord{
		ID:             report.ID,
		ReportType:     string(report.ReportType),
		Filename:       report.Filename,
		Result:         datatypes.JSON(result),
		Timestamp:      report.Timestamp.UTC(),
		CreatedBy:      report.CreatedBy,
		CreatedByEmail: report.CreatedByEmail,
	}, nil
}

func fromRecord(rec *reportRecord) (*domain.StoredReport, error) {
	kind := domain.ReportKind(rec.ReportType)
	result, err := domain.DecodeReport(kind, rec.Result)
	if err != nil {
		return nil, err
	}
	return &domain.StoredReport{
		ID:             rec.ID,
		ReportType:     kind,
		Filename:       rec.Filename,
		Result:         result,
		Timestamp:      rec.Timestamp.UTC(),
		CreatedBy:      rec.CreatedBy,
		CreatedByEmail: rec.CreatedByEmail,
	}, nil
}
