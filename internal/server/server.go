package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	_ "github.com/jackzampolin/casebundle/docs/swagger"
	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/casestore"
	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/home"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
	"github.com/jackzampolin/casebundle/internal/svcctx"
)

// Server is the casebundle HTTP server.
// It opens the settings store and the case database on start and closes
// them on shutdown.
type Server struct {
	httpServer *http.Server
	home       *home.Dir
	configMgr  *config.Manager
	caseDBPath string
	logger     *slog.Logger

	settings *config.SQLiteStore
	cases    *casestore.Store
	live     *config.Live
	compiler *bundle.Compiler

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Home is the casebundle home directory (default: ~/.casebundle)
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// CaseDB overrides the case_db setting
	CaseDB string
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		h, err := home.New("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Home = h
	}

	caseDB := cfg.CaseDB
	if caseDB == "" && cfg.ConfigManager != nil {
		caseDB = cfg.ConfigManager.Get().CaseDB
	}
	if caseDB == "" {
		caseDB = cfg.Home.CaseDBPath()
	}

	s := &Server{
		home:       cfg.Home,
		configMgr:  cfg.ConfigManager,
		caseDBPath: caseDB,
		logger:     cfg.Logger,
	}

	var configFile string
	if cfg.ConfigManager != nil {
		configFile = cfg.ConfigManager.ConfigFile()
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{ConfigFile: configFile, CaseDB: caseDB}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start opens the stores and serves HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.open(ctx); err != nil {
		s.closeStores()
		s.setNotRunning()
		return err
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

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

// open prepares the home directory, both databases, the effective config and
// the compiler.
func (s *Server) open(ctx context.Context) error {
	if err := s.home.EnsureExists(); err != nil {
		return fmt.Errorf("failed to create home directory: %w", err)
	}

	settings, err := config.OpenStore(ctx, s.home.SettingsDBPath())
	if err != nil {
		return err
	}
	s.settings = settings

	s.logger.Info("opening case database", "path", s.caseDBPath)
	cases, err := casestore.Open(ctx, s.caseDBPath, true, s.logger)
	if err != nil {
		return err
	}
	s.cases = cases
	if err := cases.Migrate(ctx); err != nil {
		return err
	}

	live, err := config.NewLive(ctx, s.configMgr, settings, s.logger)
	if err != nil {
		return fmt.Errorf("failed to apply settings: %w", err)
	}
	s.live = live
	s.compiler = bundle.New(live.Get().CompilerConfig(s.logger))

	// Watch for config changes
	live.OnChange(func(c *config.Config) {
		s.compiler.Reload(c.CompilerConfig(s.logger))
		s.logger.Info("compiler reloaded from config")
	})

	s.mu.Lock()
	s.services = &svcctx.Services{
		Compiler:    s.compiler,
		Cases:       cases,
		ConfigStore: settings,
		Config:      live,
		Logger:      s.logger,
		Home:        s.home,
	}
	s.mu.Unlock()
	return nil
}

// shutdown stops the HTTP server and closes the databases.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.closeStores()
	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) closeStores() {
	s.mu.Lock()
	s.services = nil
	s.mu.Unlock()

	if s.cases != nil {
		if err := s.cases.Close(); err != nil {
			s.logger.Error("case database close error", "error", err)
		}
		s.cases = nil
	}
	if s.settings != nil {
		if err := s.settings.Close(); err != nil {
			s.logger.Error("settings store close error", "error", err)
		}
		s.settings = nil
	}
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

// Compiler returns the bundle compiler.
// Returns nil if the server hasn't started yet.
func (s *Server) Compiler() *bundle.Compiler {
	if svc := s.currentServices(); svc != nil {
		return svc.Compiler
	}
	return nil
}

// Config returns the effective configuration.
// Returns nil if the server hasn't started yet.
func (s *Server) Config() *config.Live {
	if svc := s.currentServices(); svc != nil {
		return svc.Config
	}
	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// CaseDBPath returns the case database path.
func (s *Server) CaseDBPath() string {
	return s.caseDBPath
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc := s.currentServices(); svc != nil {
			ctx = svcctx.WithServices(ctx, svc)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the databases aren't open.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.currentServices() == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
