// Package app wires the academic reports service together: configuration,
// logging, telemetry, the report store, services, HTTP routes and the
// websocket hub.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, REPORTS_CONFIG and REPORTS_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Open the report store (memory, sqlite or postgres), optionally behind redis
//	4. Build the report and health services
//	5. Mount middleware and routes
//
// # Middleware Order
//
//	RequestID → RealIP → OTel → Logger → Recoverer → SecurityHeaders → CORS → RateLimit → Timeout
//
// The websocket endpoint only sits behind RequestID and RealIP so the
// upgrade can hijack the connection.
//
// # Graceful Shutdown
//
// Run returns once its context is cancelled. In-flight requests are given
// the configured shutdown timeout, websocket clients are disconnected and
// the store and telemetry providers are closed. The package never calls
// os.Exit.
package app
