// Package services implements the business logic between HTTP handlers and
// the report store.
//
// ReportService owns the upload pipeline: validate the report kind and
// period, decode the spreadsheet, run the extractor, persist the result and
// publish a report.created event. It also serves history listings, single
// reports, deletions and CSV/XLSX exports.
//
// HealthService pings the report store for the health endpoint.
//
// Services depend on small interfaces (TableDecoder, ExtractionMetrics,
// WebSocketHub, storage.ReportStore) so tests can replace them with
// testify mocks or the in-memory store:
//
//	store := storage.NewMemoryStore()
//	svc := services.NewReportService(store, dataprocessing.NewParser(logger), logger,
//		services.WithHub(hub),
//		services.WithMetrics(metrics),
//	)
//	report, err := svc.Upload(ctx, services.UploadRequest{Kind: "attendance", ...})
package services
