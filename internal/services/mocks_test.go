package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"acadreports/internal/table"
	"acadreports/pkg/contracts/domain"
)

// MockWebSocketHub is a mock for WebSocketHub interface
type MockWebSocketHub struct {
	mock.Mock
}

func (m *MockWebSocketHub) Broadcast(messageType string, data interface{}) {
	m.Called(messageType, data)
}

// MockDecoder is a mock for TableDecoder interface
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(ctx context.Context, filename string, content []byte) (*table.Table, error) {
	args := m.Called(ctx, filename, content)
	if t := args.Get(0); t != nil {
		return t.(*table.Table), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMetrics is a mock for ExtractionMetrics interface
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordExtraction(ctx context.Context, kind, outcome string, duration time.Duration, records int) {
	m.Called(ctx, kind, outcome, duration, records)
}

func (m *MockMetrics) RecordDecodeFailure(ctx context.Context, kind string) {
	m.Called(ctx, kind)
}

// MockStore is a mock for storage.ReportStore interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, report *domain.StoredReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockStore) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.StoredReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) List(ctx context.Context, limit int) ([]*domain.StoredReport, error) {
	args := m.Called(ctx, limit)
	if r := args.Get(0); r != nil {
		return r.([]*domain.StoredReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
