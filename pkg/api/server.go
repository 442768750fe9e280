package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ServerConfig holds the listener settings for the API server.
type ServerConfig struct {
	// Host is the interface to bind to (default: "localhost").
	Host string `yaml:"host" json:"host"`

	// Port is the port to listen on (default: 8420).
	Port int `yaml:"port" json:"port"`

	// ReadTimeout bounds reading of an entire request.
	ReadTimeout time.Duration `yaml:"read_timeout" json:"readTimeout"`

	// WriteTimeout bounds writing of a response.
	WriteTimeout time.Duration `yaml:"write_timeout" json:"writeTimeout"`

	// IdleTimeout bounds keep-alive waits between requests.
	IdleTimeout time.Duration `yaml:"idle_timeout" json:"idleTimeout"`

	// CORSOrigins lists origins allowed to call the API and open
	// WebSocket connections.
	CORSOrigins []string `yaml:"cors_origins" json:"corsOrigins"`

	// EnableLogging turns on per-request logging.
	EnableLogging bool `yaml:"enable_logging" json:"enableLogging"`
}

// DefaultServerConfig returns the server defaults. The CORS list
// covers the Vite dev server the dashboard runs on.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:          "localhost",
		Port:          8420,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		CORSOrigins:   []string{"http://localhost:5173"},
		EnableLogging: true,
	}
}

// Server owns the HTTP listener and the router behind it.
type Server struct {
	cfg    *ServerConfig
	router *Router
	http   *http.Server
}

// NewServer creates a server from cfg; nil or zero fields fall back to
// the defaults.
func NewServer(cfg *ServerConfig) *Server {
	defaults := DefaultServerConfig()
	if cfg == nil {
		cfg = defaults
	}
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.Port == 0 {
		cfg.Port = defaults.Port
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}

	return &Server{
		cfg:    cfg,
		router: NewRouter(),
	}
}

// Address returns the host:port the server binds to.
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Router returns the router so callers can register routes before
// Start.
func (s *Server) Router() *Router {
	return s.router
}

// Start builds the middleware chain and begins listening in a
// goroutine. It returns an error when the listener fails to bind
// immediately, such as a port already in use.
func (s *Server) Start() error {
	if s.http != nil {
		return fmt.Errorf("server is already running")
	}

	var handler http.Handler = s.router
	if len(s.cfg.CORSOrigins) > 0 {
		handler = CORSMiddleware(s.cfg.CORSOrigins)(handler)
		SetUpgraderCheckOrigin(originChecker(s.cfg.CORSOrigins))
	}
	if s.cfg.EnableLogging {
		handler = LoggingMiddleware(handler)
	}
	handler = RecoveryMiddleware(handler)

	s.http = &http.Server{
		Addr:         s.Address(),
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[api] Listening on %s", s.Address())
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Give the listener a moment to surface bind failures.
	select {
	case err := <-errCh:
		s.http = nil
		return fmt.Errorf("server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown stops the listener, waiting for in-flight requests up to the
// context deadline. Shutting down a server that never started is a
// no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	log.Printf("[api] Shutting down")
	err := s.http.Shutdown(ctx)
	s.http = nil
	return err
}

// originChecker builds the WebSocket origin check from the CORS list.
// A "*" entry allows every origin; requests without an Origin header
// (same-origin and non-browser clients) are always allowed.
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := map[string]bool{}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
