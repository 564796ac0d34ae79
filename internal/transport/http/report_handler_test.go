package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "acadreports/internal/errors"
	"acadreports/internal/reports"
	"acadreports/internal/services"
	"acadreports/internal/storage"
	"acadreports/internal/validation"
	"acadreports/pkg/contracts/domain"
)

// MockReportService is a mock implementation of ReportServiceInterface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Upload(ctx context.Context, req services.UploadRequest) (*domain.StoredReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredReport), args.Error(1)
}

func (m *MockReportService) History(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryItem), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, id string) (*domain.StoredReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredReport), args.Error(1)
}

func (m *MockReportService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportService) Export(ctx context.Context, id, format string) (*services.ExportedReport, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportedReport), args.Error(1)
}

func (m *MockReportService) Kinds() []services.ReportKindInfo {
	args := m.Called()
	return args.Get(0).([]services.ReportKindInfo)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReportRouter(svc ReportServiceInterface) http.Handler {
	logger := testLogger()
	eh := apierrors.NewErrorHandler(logger, false)
	h := NewReportHandler(svc, validation.NewFileValidator(logger, 1024), 100, logger, eh)

	r := chi.NewRouter()
	r.Get("/api/report-types", h.Kinds)
	r.Mount("/api/reports", h.Routes())
	return r
}

func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/reports/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sampleStored() *domain.StoredReport {
	return &domain.StoredReport{
		ID:         "2f1c9a54-7d0e-4a8b-9c3d-111111111111",
		ReportType: domain.ReportKindHomework,
		Filename:   "hw.xlsx",
		Result: &domain.HomeworkReport{
			Teachers: []domain.TeacherHomework{{Name: "Иванов И.И.", CheckPercent: 50}},
			Period:   domain.PeriodWeek,
		},
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CreatedBy: "anonymous",
	}
}

func TestReportHandler_Upload(t *testing.T) {
	t.Run("stores the report", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Upload", mock.Anything, mock.MatchedBy(func(req services.UploadRequest) bool {
			return req.Kind == "homework" &&
				req.Period == "week" &&
				req.Filename == "hw.xlsx" &&
				string(req.Content) == "content" &&
				req.CreatedBy == "anonymous"
		})).Return(sampleStored(), nil)

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, multipartUpload(t, "hw.xlsx", []byte("content"), map[string]string{
			"report_type": "homework",
			"period":      "week",
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "2f1c9a54-7d0e-4a8b-9c3d-111111111111", body["id"])
		assert.Equal(t, "homework", body["report_type"])
		assert.Equal(t, domain.ReportKindHomework.Label(), body["report_label"])
		assert.Equal(t, "hw.xlsx", body["filename"])
		assert.NotNil(t, body["result"])
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name       string
		filename   string
		content    []byte
		fields     map[string]string
		wantStatus int
	}{
		{
			name:       "missing file",
			fields:     map[string]string{"report_type": "topics"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing report type",
			filename:   "a.xlsx",
			content:    []byte("x"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported extension",
			filename:   "a.pdf",
			content:    []byte("x"),
			fields:     map[string]string{"report_type": "topics"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "file above the limit",
			filename:   "big.xlsx",
			content:    bytes.Repeat([]byte("x"), 2048),
			fields:     map[string]string{"report_type": "topics"},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)

			rec := httptest.NewRecorder()
			newReportRouter(svc).ServeHTTP(rec, multipartUpload(t, tt.filename, tt.content, tt.fields))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}

	t.Run("period is ignored for kinds without one", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Upload", mock.Anything, mock.MatchedBy(func(req services.UploadRequest) bool {
			return req.Kind == "schedule" && req.Period == "year"
		})).Return(sampleStored(), nil)

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, multipartUpload(t, "s.xlsx", []byte("x"), map[string]string{
			"report_type": "schedule",
			"period":      "year",
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad homework period", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: year", reports.ErrInvalidPeriod))

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, multipartUpload(t, "a.xlsx", []byte("x"), map[string]string{
			"report_type": "homework",
			"period":      "year",
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apierrors.TypeInvalidPeriod, decodeBody(t, rec)["type"])
	})

	t.Run("unknown report kind", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: grades", reports.ErrUnknownReportKind))

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, multipartUpload(t, "a.xlsx", []byte("x"), map[string]string{
			"report_type": "grades",
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Неизвестный тип отчета: grades", body["detail"])
		assert.Equal(t, apierrors.TypeUnknownReport, body["type"])
	})
}

func TestReportHandler_History(t *testing.T) {
	items := []domain.HistoryItem{{ID: "a", ReportType: domain.ReportKindTopics, Filename: "t.xlsx"}}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", query: "", wantLimit: 100, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "limit above cap", query: "?limit=500", wantStatus: http.StatusBadRequest},
		{name: "not a number", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			if tt.wantLimit > 0 {
				svc.On("History", mock.Anything, tt.wantLimit).Return(items, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/reports/history"+tt.query, nil)
			rec := httptest.NewRecorder()
			newReportRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				body := decodeBody(t, rec)
				history, ok := body["history"].([]interface{})
				require.True(t, ok)
				assert.Len(t, history, 1)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestReportHandler_Get(t *testing.T) {
	svc := new(MockReportService)
	svc.On("Get", mock.Anything, "known").Return(sampleStored(), nil)
	svc.On("Get", mock.Anything, "missing").Return(nil, storage.ErrReportNotFound)
	router := newReportRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/known", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hw.xlsx", decodeBody(t, rec)["filename"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Отчет не найден", decodeBody(t, rec)["detail"])
}

func TestReportHandler_Delete(t *testing.T) {
	svc := new(MockReportService)
	svc.On("Delete", mock.Anything, "known").Return(nil)
	svc.On("Delete", mock.Anything, "missing").Return(storage.ErrReportNotFound)
	router := newReportRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reports/known", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Отчет удален", body["message"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reports/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_Export(t *testing.T) {
	t.Run("csv attachment", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Export", mock.Anything, "known", "csv").Return(&services.ExportedReport{
			Filename:    "homework_2f1c9a54.csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        []byte("a,b\n"),
		}, nil)

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/known/export?format=csv", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="homework_2f1c9a54.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "a,b\n", rec.Body.String())
	})

	t.Run("defaults to xlsx", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("Export", mock.Anything, "known", "xlsx").Return(&services.ExportedReport{
			Filename:    "homework_2f1c9a54.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        []byte("PK"),
		}, nil)

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/known/export", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unsupported format", func(t *testing.T) {
		svc := new(MockReportService)

		rec := httptest.NewRecorder()
		newReportRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/known/export?format=pdf", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReportHandler_Kinds(t *testing.T) {
	svc := new(MockReportService)
	svc.On("Kinds").Return([]services.ReportKindInfo{
		{Kind: domain.ReportKindSchedule, Label: domain.ReportKindSchedule.Label()},
		{Kind: domain.ReportKindHomework, Label: domain.ReportKindHomework.Label(), AcceptsPeriod: true},
	})

	rec := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report-types", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	kinds, ok := decodeBody(t, rec)["report_types"].([]interface{})
	require.True(t, ok)
	require.Len(t, kinds, 2)
	first := kinds[0].(map[string]interface{})
	assert.Equal(t, "schedule", first["id"])
}
