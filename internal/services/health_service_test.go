package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"acadreports/internal/storage"
)

func TestHealthService(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		wantStatus  string
		wantStorage string
	}{
		{name: "store reachable", wantStatus: StatusOK, wantStorage: StatusOK},
		{name: "store down", pingErr: errors.New("dial tcp: connection refused"), wantStatus: StatusDegraded, wantStorage: StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			store.On("Ping", mock.Anything).Return(tt.pingErr)

			svc := NewHealthService("1.2.3", store, testLogger())
			status := svc.HealthCheck(context.Background())

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, "1.2.3", status.Version)
			assert.Equal(t, tt.wantStorage, status.Services["storage"].Status)
			assert.NotEmpty(t, status.Runtime["go_version"])

			err := svc.Ready(context.Background())
			if tt.pingErr != nil {
				assert.ErrorIs(t, err, ErrServiceUnavailable)
				assert.Contains(t, status.Services["storage"].Message, "connection refused")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHealthServiceWithoutStore(t *testing.T) {
	svc := NewHealthService("dev", nil, nil)
	status := svc.HealthCheck(context.Background())

	assert.Equal(t, StatusOK, status.Status)
	assert.Empty(t, status.Services)
}

func TestHealthServiceMemoryStore(t *testing.T) {
	svc := NewHealthService("dev", storage.NewMemoryStore(), testLogger())
	assert.NoError(t, svc.Ready(context.Background()))
}
