package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"acadreports/pkg/contracts/domain"
)

const (
	// PrefixReport namespaces cached report keys
	PrefixReport = "report:"

	// TTLReportCache is the default lifetime of a cached report
	TTLReportCache = 10 * time.Minute
)

// CacheConfig holds redis connection settings
type CacheConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	TTL          time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns the redis address in "host:port" format
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CachedStore serves Get from redis and falls through to the wrapped store on
// a miss. Redis failures are logged and never fail the request.
type CachedStore struct {
	inner  ReportStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStore wraps inner with a redis read-through cache
func NewCachedStore(inner ReportStore, cfg CacheConfig, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = TTLReportCache
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   -1,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	return &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "report_cache")),
	}
}

func reportKey(id string) string {
	return PrefixReport + id
}

func (s *CachedStore) Save(ctx context.Context, report *domain.StoredReport) error {
	if err := s.inner.Save(ctx, report); err != nil {
		return err
	}
	s.invalidate(ctx, report.ID)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	data, err := s.client.Get(ctx, reportKey(id)).Bytes()
	switch {
	case err == nil:
		var report domain.StoredReport
		if uerr := json.Unmarshal(data, &report); uerr == nil {
			return &report, nil
		} else {
			s.logger.WarnContext(ctx, "discarding undecodable cache entry",
				slog.String("report_id", id), slog.String("error", uerr.Error()))
		}
	case errors.Is(err, redis.Nil):
	default:
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("report_id", id), slog.String("error", err.Error()))
	}

	report, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		if err := s.client.Set(ctx, reportKey(id), data, s.ttl).Err(); err != nil {
			s.logger.DebugContext(ctx, "cache write failed",
				slog.String("report_id", id), slog.String("error", err.Error()))
		}
	}
	return report, nil
}

func (s *CachedStore) List(ctx context.Context, limit int) ([]*domain.StoredReport, error) {
	return s.inner.List(ctx, limit)
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Ping checks the backing store only; the cache is optional
func (s *CachedStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache unreachable", slog.String("error", err.Error()))
	}
	return s.inner.Ping(ctx)
}

func (s *CachedStore) Close() error {
	cacheErr := s.client.Close()
	if err := s.inner.Close(); err != nil {
		return err
	}
	return cacheErr
}

func (s *CachedStore) invalidate(ctx context.Context, id string) {
	if err := s.client.Del(ctx, reportKey(id)).Err(); err != nil {
		s.logger.DebugContext(ctx, "cache invalidation failed",
			slog.String("report_id", id), slog.String("error", err.Error()))
	}
}
