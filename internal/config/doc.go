// Package config loads the service configuration.
//
// Values are resolved in three layers, later ones winning:
//
//	1. Default()
//	2. the YAML file named by REPORTS_CONFIG, if set
//	3. REPORTS_* environment variables
//
// Nested sections map to underscored names, for example:
//
//	REPORTS_SERVER_PORT=8000
//	REPORTS_STORAGE_DRIVER=postgres
//	REPORTS_STORAGE_DATABASE_URL=postgres://reports@db/reports
//	REPORTS_CACHE_ENABLED=true
//	REPORTS_SECURITY_AUTH_JWT_SECRET=...
//
// The merged result is validated before Load returns it.
package config
