// Package server sets up the HTTP server with all routes
package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/nmorris876/yaadmind/internal/alerts"
	"github.com/nmorris876/yaadmind/internal/config"
	"github.com/nmorris876/yaadmind/internal/health"
	"github.com/nmorris876/yaadmind/internal/inference"
	"github.com/nmorris876/yaadmind/internal/journal"
	"github.com/nmorris876/yaadmind/internal/logging"
	"github.com/nmorris876/yaadmind/internal/metrics"
	"github.com/nmorris876/yaadmind/internal/mood"
	"github.com/nmorris876/yaadmind/internal/ratelimit"
	"github.com/nmorris876/yaadmind/internal/realtime"
	"github.com/nmorris876/yaadmind/internal/resources"
	"github.com/nmorris876/yaadmind/internal/security"
	"github.com/nmorris876/yaadmind/internal/triage"
	"github.com/nmorris876/yaadmind/internal/validation"
	"github.com/nmorris876/yaadmind/internal/violence"
)

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg           *config.Config
	engine        *triage.Engine
	triageStore   triage.Store
	violenceStore violence.Store
	violenceSvc   *violence.Service
	alertSvc      *alerts.Service
	moodSvc       *mood.Service
	journalSvc    *journal.Service
	inference     *inference.Client // nil in degraded mode
	hub           *realtime.Hub
	checks        *health.Registry
	rateLimiter   *ratelimit.Limiter
	db            *sql.DB // nil if using in-memory
	router        *gin.Engine
	httpSrv       *http.Server
	logger        *slog.Logger
	cancelRun     context.CancelFunc // cancels background goroutines started in Run

	// Health state
	ready   atomic.Bool
	healthy atomic.Bool
}

// Option configures the server
type Option func(*Server)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithInferenceClient sets a custom model-server client (for testing)
func WithInferenceClient(c *inference.Client) Option {
	return func(s *Server) {
		s.inference = c
	}
}

// New creates a new server instance
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logging.New(cfg.LogLevel, "json"),
		checks: health.NewRegistry(),
	}

	// Apply options first (may set inference client/logger)
	for _, opt := range opts {
		opt(s)
	}

	// Initialize storage (Postgres if DATABASE_URL set, otherwise in-memory)
	var (
		alertStore   alerts.Store
		moodStore    mood.Store
		journalStore journal.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		// Test connection
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		s.db = db
		s.triageStore = triage.NewPostgresStore(db)
		s.violenceStore = violence.NewPostgresStore(db)
		alertStore = alerts.NewPostgresStore(db)
		moodStore = mood.NewPostgresStore(db)
		journalStore = journal.NewPostgresStore(db)
		s.logger.Info("using PostgreSQL storage", "url", maskDSN(cfg.DatabaseURL))

		s.checks.Register("database", func(ctx context.Context) health.Status {
			if err := db.PingContext(ctx); err != nil {
				return health.Status{Name: "database", Healthy: false, Detail: err.Error()}
			}
			return health.Status{Name: "database", Healthy: true}
		})
	} else {
		s.triageStore = triage.NewMemoryStore()
		s.violenceStore = violence.NewMemoryStore()
		alertStore = alerts.NewMemoryStore()
		moodStore = mood.NewMemoryStore()
		journalStore = journal.NewMemoryStore()
		s.logger.Info("using in-memory storage (data will not persist)")
	}

	// Model server client (sentiment + entity extraction). Without it the
	// pipeline runs in degraded mode: neutral sentiment, no entities.
	if s.inference == nil && cfg.ModelServerURL != "" {
		s.inference = inference.NewClient(cfg.ModelServerURL)
	}
	if s.inference != nil {
		inf := s.inference
		s.checks.Register("model_server", func(ctx context.Context) health.Status {
			if err := inf.Ping(ctx); err != nil {
				return health.Status{Name: "model_server", Healthy: false, Detail: err.Error()}
			}
			return health.Status{Name: "model_server", Healthy: true}
		})
		s.logger.Info("model server enabled", "url", cfg.ModelServerURL)
	} else {
		s.logger.Warn("MODEL_SERVER_URL not set, running with lexicon-only analysis")
	}

	// Realtime hub for the counsellor dashboard
	s.hub = realtime.NewHub(s.logger)

	// Risk triage engine
	s.engine = triage.NewEngine(s.triageStore)

	// Crisis alerts, pushed to counsellors over websocket and webhook
	s.alertSvc = alerts.NewService(alertStore, s.logger).WithBroadcaster(s.hub)
	if cfg.AlertWebhookURL != "" {
		s.alertSvc = s.alertSvc.WithWebhook(cfg.AlertWebhookURL)
		s.logger.Info("alert webhook enabled")
	}

	// Mood tracking
	s.moodSvc = mood.NewService(moodStore)

	// Violence reports with NER entity extraction and agency routing
	var entityProvider violence.EntityProvider
	if s.inference != nil {
		entityProvider = s.inference
	}
	s.violenceSvc = violence.NewService(s.violenceStore, entityProvider).WithBroadcaster(s.hub)

	// Journalling, the main entry point into the triage pipeline
	s.journalSvc = journal.NewService(journalStore, s.engine).
		WithMoodRecorder(s.moodSvc).
		WithAlertRaiser(s.alertSvc)
	if s.inference != nil {
		s.journalSvc = s.journalSvc.WithSentiment(s.inference)
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()

	s.setupMiddleware()
	s.setupRoutes()

	s.healthy.Store(true)

	return s, nil
}

// maskDSN hides password in connection string for logging
func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *Server) setupMiddleware() {
	// Recovery with logging
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.L(c.Request.Context()).Error("panic recovered",
			"error", recovered,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	}))

	// Security headers
	s.router.Use(security.HeadersMiddleware())

	// CORS (allow all origins for demo - restrict in production)
	s.router.Use(security.CORSMiddleware([]string{"*"}))

	// Request size limit (1MB)
	s.router.Use(validation.RequestSizeMiddleware(validation.MaxRequestSize))

	// Rate limiting
	limitCfg := ratelimit.DefaultConfig()
	limitCfg.RequestsPerMinute = s.cfg.RateLimitRPS * 60
	s.rateLimiter = ratelimit.New(limitCfg)
	s.router.Use(s.rateLimiter.Middleware())

	// Prometheus metrics
	s.router.Use(metrics.Middleware())

	// Request ID
	s.router.Use(s.requestIDMiddleware())

	// Logging
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for existing request ID (from load balancer, etc.)
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		// Add to context
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		ctx = logging.WithLogger(ctx, s.logger)
		c.Request = c.Request.WithContext(ctx)

		// Set response header
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := logging.L(c.Request.Context())

		// Log level based on status code
		switch {
		case status >= 500:
			logger.Error("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
				"client_ip", c.ClientIP(),
			)
		case status >= 400:
			logger.Warn("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		default:
			logger.Info("request completed",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		}
	}
}

// -----------------------------------------------------------------------------
// Routes
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	// Health & metrics endpoints
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/health/live", s.livenessHandler)
	s.router.GET("/health/ready", s.readinessHandler)
	s.router.GET("/metrics", metrics.Handler())

	// API info
	s.router.GET("/api", s.infoHandler)

	// WebSocket for the counsellor dashboard (crisis alerts + escalations)
	s.router.GET("/ws", func(c *gin.Context) {
		s.hub.HandleWebSocket(c.Writer, c.Request)
	})
	s.router.GET("/ws/stats", s.hubStatsHandler)

	// V1 API group
	v1 := s.router.Group("/v1")

	// Ad-hoc risk analysis
	var sentiment triage.SentimentProvider
	if s.inference != nil {
		sentiment = s.inference
	}
	triage.NewHandler(s.engine, sentiment, s.triageStore).RegisterRoutes(v1)

	// Journalling (analysis pipeline entry point)
	journal.NewHandler(s.journalSvc).
		WithMaxContentLength(s.cfg.MaxEntryChars).
		RegisterRoutes(v1)

	// Community violence reports
	violence.NewHandler(s.violenceSvc, s.violenceStore).RegisterRoutes(v1)

	// Crisis alerts for counsellors
	alerts.NewHandler(s.alertSvc).RegisterRoutes(v1)

	// Mood history and trends
	mood.NewHandler(s.moodSvc).RegisterRoutes(v1)

	// Crisis resource directory
	resources.NewHandler().RegisterRoutes(v1)
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ok, statuses := s.checks.CheckAll(ctx)

	status := "healthy"
	httpStatus := http.StatusOK
	if !ok {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"version":   "0.1.0",
		"checks":    statuses,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) livenessHandler(c *gin.Context) {
	if !s.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) infoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "YaadMind",
		"description": "Bilingual mental-health risk triage for Jamaica",
		"version":     "0.1.0",
		"languages":   []string{"en", "patois"},
	})
}

func (s *Server) hubStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Stats())
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Run starts the server and blocks until shutdown
func (s *Server) Run(ctx context.Context) error {
	// Create a cancellable context for background goroutines so Shutdown() can stop them.
	runCtx, cancel := context.WithCancel(ctx)
	s.cancelRun = cancel

	s.httpSrv = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to catch server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.logger.Info("starting server", "port", s.cfg.Port, "env", s.cfg.Env)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Start realtime hub
	go s.hub.Run(runCtx)

	// Export connection pool stats
	if s.db != nil {
		metrics.StartDBStatsCollector(runCtx, s.db, 15*time.Second)
	}

	// Mark as ready after brief delay for startup
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.ready.Store(true)
		s.logger.Info("server ready")
	}()

	// Wait for shutdown signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	s.ready.Store(false)
	s.logger.Info("starting graceful shutdown")

	// Cancel the context for all background goroutines (hub, collectors)
	if s.cancelRun != nil {
		s.cancelRun()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
		s.logger.Info("rate limiter stopped")
	}

	// Close database connection pool
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		} else {
			s.logger.Info("database connection closed")
		}
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the gin router for testing
func (s *Server) Router() *gin.Engine {
	return s.router
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
