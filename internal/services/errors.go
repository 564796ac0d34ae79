package services

import "errors"

var (
	// ErrEmptyUpload is returned when an upload carries no bytes
	ErrEmptyUpload = errors.New("Файл пустой")
	// ErrUnsupportedExport is returned for an export format other than xlsx or csv
	ErrUnsupportedExport = errors.New("unsupported export format")
	// ErrServiceUnavailable is returned when the report store cannot be reached
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
