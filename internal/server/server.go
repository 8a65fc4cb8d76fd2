package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/config"
	"github.com/jackzampolin/langextract/internal/form"
	"github.com/jackzampolin/langextract/internal/presets"
	"github.com/jackzampolin/langextract/internal/server/endpoints"
	"github.com/jackzampolin/langextract/internal/session"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

const (
	shutdownTimeout = 30 * time.Second
	sweepInterval   = time.Minute
)

// Server is the LangExtract web server.
// It renders the extraction form and keeps one form per browser session.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	client     *api.Client
	sessions   *session.Store
	presets    *atomic.Pointer[presets.Set]
	configMgr  *config.Manager
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	presetsFile string
	waitBackend time.Duration

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu        sync.RWMutex
	running   bool
	addr      string
	started   chan struct{}
	startOnce sync.Once
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 3000)
	Port string
	// Client talks to the extraction backend
	Client *api.Client
	// SessionTTL is how long an idle form is kept (default: 30m)
	SessionTTL time.Duration
	// MaxSessions caps live sessions (default: 1000, negative for no limit)
	MaxSessions int
	// PresetsFile is an optional YAML file of extra schema presets
	PresetsFile string
	// WaitBackend, when positive, delays start-up until the backend answers
	WaitBackend time.Duration
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// LevelVar is the level of Logger, adjusted on config reload
	LevelVar *slog.LevelVar
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Client == nil {
		return nil, errors.New("server requires a backend client")
	}

	set, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	s := &Server{
		client:      cfg.Client,
		presets:     &atomic.Pointer[presets.Set]{},
		configMgr:   cfg.ConfigManager,
		logger:      cfg.Logger,
		levelVar:    cfg.LevelVar,
		presetsFile: cfg.PresetsFile,
		waitBackend: cfg.WaitBackend,
		started:     make(chan struct{}),
	}
	s.presets.Store(set)
	s.sessions = session.NewStore(cfg.SessionTTL, func() *form.Controller {
		return form.NewController(cfg.Client)
	})
	if cfg.MaxSessions != 0 {
		s.sessions.SetMaxSessions(cfg.MaxSessions)
	}

	s.services = &svcctx.Services{
		Client:   s.client,
		Sessions: s.sessions,
		Presets:  s.presets,
		Logger:   s.logger,
	}

	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(s.reload)
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = endpoints.NewRegistry()

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.withSession)
	s.handler = s.withLogging(s.withServices(mux))

	// WriteTimeout stays 0 so a stalled backend stalls the request
	// instead of the server cutting it.
	s.httpServer = &http.Server{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:     s.handler,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	return s, nil
}

// Start starts the server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.waitBackend > 0 {
		s.logger.Info("waiting for extraction backend", "url", s.client.BaseURL(), "timeout", s.waitBackend)
		if err := s.client.WaitReady(ctx, s.waitBackend); err != nil {
			s.setNotRunning()
			return fmt.Errorf("extraction backend not ready: %w", err)
		}
		s.logger.Info("extraction backend is ready", "url", s.client.BaseURL())
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.Run(sweepCtx, sweepInterval, func(removed int) {
		if removed > 0 {
			s.logger.Debug("expired sessions removed", "count", removed, "remaining", s.sessions.Len())
		}
	})

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String(), "backend", s.client.BaseURL())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.startOnce.Do(func() { close(s.started) })

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return err
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Started is closed once the server first accepts connections.
func (s *Server) Started() <-chan struct{} {
	return s.started
}

// Addr returns the server's listen address. Once started it is the bound
// address, which differs from the configured one when the port is 0.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.addr != "" {
		return s.addr
	}
	return s.httpServer.Addr
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// Presets returns the presets currently offered by the form.
func (s *Server) Presets() *presets.Set {
	return s.presets.Load()
}

// reload applies a changed config. The backend URL and listen address need
// a restart; the log level and presets are swapped in place.
func (s *Server) reload(c *config.Config) {
	if s.levelVar != nil {
		s.levelVar.Set(c.Log.SlogLevel())
	}

	path := c.PresetsFile
	if path == "" {
		path = s.presetsFile
	}
	set, err := presets.Load(path)
	if err != nil {
		s.logger.Warn("keeping previous presets", "error", err)
		return
	}
	s.presets.Store(set)
	s.logger.Info("configuration reloaded", "log_level", c.Log.SlogLevel().String(), "presets", set.Len())
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withSession attaches the caller's form session, creating one (and its
// cookie) when the request carries no live session.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, created := s.sessions.GetOrCreate(session.IDFromRequest(r))
		if created {
			session.SetCookie(w, sess.ID, s.sessions.TTL())
			s.logger.Debug("session created", "session", sess.ID)
		}
		next(w, r.WithContext(session.WithSession(r.Context(), sess)))
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging logs every request once it completes.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
