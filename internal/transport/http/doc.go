// Package http implements the HTTP handlers of the academic reports API.
// Handlers only parse requests and format responses; extraction, storage
// and export live in the services package.
//
// Routes are mounted by the app package under /api:
//
//	GET    /api/                      service banner
//	GET    /api/health                liveness and dependency status
//	GET    /api/report-types          supported report kinds
//	POST   /api/reports/upload        multipart upload: file, report_type, period
//	GET    /api/reports/history       newest reports first, ?limit=
//	GET    /api/reports/{id}          one stored report
//	DELETE /api/reports/{id}          remove a stored report
//	GET    /api/reports/{id}/export   ?format=xlsx|csv
//
// Errors are answered as RFC 7807 problem documents through
// errors.ErrorHandler.
package http
