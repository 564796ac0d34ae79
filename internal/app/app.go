package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"acadreports/internal/config"
	"acadreports/internal/dataprocessing"
	apierrors "acadreports/internal/errors"
	"acadreports/internal/infrastructure"
	customMiddleware "acadreports/internal/middleware"
	"acadreports/internal/services"
	"acadreports/internal/storage"
	handlers "acadreports/internal/transport/http"
	"acadreports/internal/validation"
	ws "acadreports/internal/websocket"
)

// Application wires configuration, storage, services and the HTTP server
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	Store         storage.ReportStore
	WebSocketHub  *ws.Hub
	ReportService *services.ReportService
	HealthService *services.HealthService
	Authenticator *customMiddleware.Authenticator
	FileValidator *validation.FileValidator
	ErrorHandler  *apierrors.ErrorHandler
}

// NewApplication loads the configuration from the environment and builds the
// application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New builds the application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("storage", cfg.Storage.Driver),
	)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices opens the report store and builds the services on it
func (a *Application) initializeServices() error {
	cfg := a.Config

	a.FileValidator = validation.NewFileValidator(a.Logger, cfg.Upload.MaxBytes)

	if cfg.Storage.Driver == config.StorageSQLite && cfg.Storage.DatabaseURL == "" {
		if err := a.FileValidator.ValidateOutputDirectory(filepath.Dir(cfg.Storage.SQLitePath)); err != nil {
			return fmt.Errorf("sqlite directory: %w", err)
		}
	}

	store, err := storage.Open(storage.Config{
		Driver:        cfg.Storage.Driver,
		DatabaseURL:   cfg.Storage.DatabaseURL,
		SQLitePath:    cfg.Storage.SQLitePath,
		SlowThreshold: cfg.Storage.SlowQueryThreshold,
	}, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	if cfg.Cache.Enabled {
		store = storage.NewCachedStore(store, storage.CacheConfig{
			Host:     cfg.Cache.Host,
			Port:     cfg.Cache.Port,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		}, a.Logger)
	}
	a.Store = store

	a.WebSocketHub = ws.NewHub(a.Logger,
		ws.WithClientMetrics(a.Metrics),
		ws.WithKeepalive(cfg.WebSocket.PingPeriod, cfg.WebSocket.PongWait),
	)

	a.ReportService = services.NewReportService(store, dataprocessing.NewParser(a.Logger), a.Logger,
		services.WithMetrics(a.Metrics),
		services.WithHub(a.WebSocketHub),
		services.WithHistoryLimit(cfg.Storage.HistoryLimit),
	)
	a.HealthService = services.NewHealthService(config.AppVersion, store, a.Logger)

	a.Authenticator = customMiddleware.NewAuthenticator(
		cfg.Security.Auth.JWTSecret,
		cfg.Security.Auth.Issuer,
		cfg.Security.Auth.Enabled,
		a.Logger,
	)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	cfg := a.Config
	r := chi.NewRouter()

	// Safe for websocket upgrades: neither wraps the ResponseWriter
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Handle(config.WebSocketEndpoint, ws.NewHandler(a.WebSocketHub, ws.HandlerConfig{
		AllowedOrigins:  cfg.Security.AllowedOrigins,
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
	}, a.Logger))

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	reportHandler := handlers.NewReportHandler(a.ReportService, a.FileValidator, cfg.Storage.HistoryLimit, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger, a.ErrorHandler)

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if cfg.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: cfg.Security.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				Logger:         a.Logger,
			}))
		}

		if cfg.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				cfg.Security.RateLimit.RequestsPerMinute,
				cfg.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Route(config.APIBasePath, func(r chi.Router) {
			r.Use(customMiddleware.Timeout(cfg.Server.RequestTimeout))

			r.Get("/", healthHandler.Root)
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
			r.Get("/report-types", reportHandler.Kinds)

			r.Group(func(r chi.Router) {
				r.Use(a.Authenticator.Handler)
				r.Mount("/reports", reportHandler.Routes())
			})
		})
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:              a.Config.Server.Addr(),
		Handler:           a.Router,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.Config.Server.WriteTimeout,
		IdleTimeout:       a.Config.Server.IdleTimeout,
	}
}

// Run serves HTTP and the websocket hub until ctx is cancelled, then shuts
// down gracefully and releases the store and telemetry providers
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level),
		slog.Bool("auth_enabled", a.Authenticator.Enabled()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.WebSocketHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down application")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	runErr := g.Wait()
	return errors.Join(runErr, a.Close())
}

// Close releases the report store and flushes telemetry
func (a *Application) Close() error {
	var errs []error

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}

	if a.OTelProviders != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}

	if len(errs) == 0 {
		a.Logger.Info("application shutdown complete")
	}
	return errors.Join(errs...)
}
