package config

import "time"

// Application constants
const (
	AppName    = "acadreports"
	AppVersion = "1.0.0"

	// Storage drivers
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	DefaultSQLitePath   = "data/reports.db"
	DefaultHistoryLimit = 100
	DefaultCacheTTL     = 10 * time.Minute

	// Uploads larger than this are rejected before decoding
	DefaultMaxUploadBytes = 20 << 20

	// Rate limiting
	DefaultRateLimit = 120 // requests per minute
	DefaultBurstSize = 30

	MinJWTSecretLength = 32

	DefaultRequestTimeout = 60 * time.Second
	WebSocketPingPeriod   = 30 * time.Second
	WebSocketPongWait     = 60 * time.Second

	DefaultLogFile = "logs/app.log"
)

// API routes
const (
	APIBasePath       = "/api"
	HealthEndpoint    = "/api/health"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)
