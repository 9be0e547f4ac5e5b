package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/logging"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/metrics"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// Server exposes the user CRUD API over HTTP.
type Server struct {
	store      *userstore.Store
	httpServer *http.Server
	port       int
	startTime  time.Time
	running    atomic.Bool
	ctx        context.Context
	cancel     context.CancelFunc
	log        *slog.Logger

	// CORS configuration
	corsConfig *config.CORSConfig

	// Metrics registry for Prometheus metrics
	metricsRegistry *metrics.Registry

	// Rendered OpenAPI document served at /openapi.json
	openapiJSON []byte

	// Version string for status endpoint
	version string
}

// New creates a new Server from cfg. A nil cfg uses defaults.
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	log := logging.Nop() // Default to no-op, can be set with SetLogger

	// Create context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())

	// Initialize metrics registry
	metricsRegistry := metrics.Init()

	s := &Server{
		store:           userstore.New(),
		port:            cfg.Server.Port,
		ctx:             ctx,
		cancel:          cancel,
		log:             log,
		corsConfig:      cfg.CORS,
		metricsRegistry: metricsRegistry,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Fall back to the default CORS policy when none was configured.
	if s.corsConfig == nil {
		s.corsConfig = config.DefaultCORSConfig()
	}

	// Render the embedded OpenAPI document once. A load failure leaves the
	// endpoint returning an error rather than stale or partial output.
	openapiJSON, err := renderOpenAPIJSON()
	if err != nil {
		s.log.Warn("failed to load embedded OpenAPI document", "error", err)
	}
	s.openapiJSON = openapiJSON

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return s
}

// Store returns the backing user store.
func (s *Server) Store() *userstore.Store {
	return s.store
}

// MetricsRegistry returns the metrics registry for Prometheus metrics.
func (s *Server) MetricsRegistry() *metrics.Registry {
	return s.metricsRegistry
}

// Handler returns the fully wrapped HTTP handler. Useful for tests that
// drive the API without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Port returns the configured listen port.
func (s *Server) Port() int {
	return s.port
}

// Addr returns the configured listen address in host:port form.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// SetLogger sets the operational logger for the server.
func (s *Server) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	} else {
		s.log = logging.Nop()
	}
}

// Start binds the listener and begins serving in a background goroutine.
// Bind failures (port in use, bad address) are returned synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.startTime = time.Now()
	s.running.Store(true)
	s.syncUserCount()

	s.log.Info("starting server", "addr", s.httpServer.Addr, "users", s.store.Count())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server, allowing in-flight requests up to
// five seconds to complete.
func (s *Server) Stop() error {
	s.cancel()
	s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// IsRunning reports whether the server has been started and not yet stopped.
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	return int(time.Since(s.startTime).Seconds())
}

// StartedAt returns the time Start was called.
func (s *Server) StartedAt() time.Time {
	return s.startTime
}

// syncUserCount refreshes the stored-users gauge from the store.
func (s *Server) syncUserCount() {
	if metrics.UsersTotal != nil {
		_ = metrics.UsersTotal.Set(float64(s.store.Count()))
	}
}
