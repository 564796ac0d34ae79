package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "acadreports/internal/errors"
	"acadreports/internal/middleware"
	"acadreports/internal/services"
	"acadreports/internal/validation"
	"acadreports/pkg/contracts/domain"
)

// multipartOverhead is the allowance for form fields and boundaries on top
// of the file size limit
const multipartOverhead = 1 << 20

// ReportHandler handles report upload, history and export requests
type ReportHandler struct {
	service       ReportServiceInterface
	fileValidator *validation.FileValidator
	formValidator *validation.Validator
	queryParams   *middleware.QueryParamValidator
	historyLimit  int
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	service ReportServiceInterface,
	fileValidator *validation.FileValidator,
	historyLimit int,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *ReportHandler {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	logger = logger.With(slog.String("component", "report_handler"))
	return &ReportHandler{
		service:       service,
		fileValidator: fileValidator,
		formValidator: validation.NewValidator(),
		queryParams:   middleware.NewQueryParamValidator(logger, errorHandler),
		historyLimit:  historyLimit,
		logger:        logger,
		errorHandler:  errorHandler,
	}
}

// Routes returns the report routes, to be mounted at /api/reports
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.Upload)
	r.Get("/history", h.History)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Get("/export", h.Export)
	})

	return r
}

// Kinds handles GET /api/report-types
func (h *ReportHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"report_types": h.service.Kinds(),
	})
}

// uploadResponse is the stored report plus its human readable label
type uploadResponse struct {
	*domain.StoredReport
	ReportLabel string `json:"report_label"`
}

// Upload handles POST /api/reports/upload
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if limit := h.fileValidator.MaxBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLarge(h.fileValidator.MaxBytes()))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{
			{Field: "file", Message: "file is required"},
		}))
		return
	}
	defer file.Close()

	form := validation.UploadForm{
		ReportType: r.FormValue("report_type"),
		Period:     r.FormValue("period"),
		Filename:   header.Filename,
	}
	if err := h.formValidator.Struct(form); err != nil {
		h.errorHandler.HandleError(w, r, toAPIValidation(err))
		return
	}

	if err := h.fileValidator.ValidateUpload(header.Filename, header.Size); err != nil {
		if errors.Is(err, validation.ErrFileTooLarge) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLarge(h.fileValidator.MaxBytes()))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{
			{Field: "file", Message: err.Error()},
		}))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	creator := middleware.CreatorFromContext(r.Context())
	stored, err := h.service.Upload(r.Context(), services.UploadRequest{
		Kind:           form.ReportType,
		Period:         form.Period,
		Filename:       header.Filename,
		Content:        content,
		CreatedBy:      creator.ID,
		CreatedByEmail: creator.Email,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, uploadResponse{StoredReport: stored, ReportLabel: stored.ReportType.Label()})
}

// History handles GET /api/reports/history
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.queryParams.ValidateInt(w, r, "limit", 1, h.historyLimit, h.historyLimit)
	if !ok {
		return
	}

	items, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"history": items,
	})
}

// Get handles GET /api/reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stored)
}

// Delete handles DELETE /api/reports/{id}
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"success": true,
		"message": "Отчет удален",
	})
}

// Export handles GET /api/reports/{id}/export
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := h.queryParams.ValidateEnum(w, r, "format", []string{"xlsx", "csv"}, "xlsx")
	if !ok {
		return
	}

	out, err := h.service.Export(r.Context(), chi.URLParam(r, "id"), format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Data); err != nil {
		h.logger.WarnContext(r.Context(), "export write failed", slog.String("error", err.Error()))
	}
}

func toAPIValidation(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apierrors.InvalidRequestWithError(err)
	}
	out := make([]apierrors.ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, apierrors.ValidationError{Field: fe.Field, Message: fe.Message})
	}
	return apierrors.NewValidationErrors(out)
}
