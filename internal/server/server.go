package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/maps"
	"github.com/voyplan/go-tripui/internal/pkg/config"
	"github.com/voyplan/go-tripui/internal/planner"
	"github.com/voyplan/go-tripui/internal/session"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *planner.Client
	sessions *session.Store
	maps     maps.Provider
	router   http.Handler
}

// New creates a Server instance with all dependencies. The backend base URL
// and the map API key are resolved here, once per process.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		client:   planner.New(cfg.BackendURL, logger),
		sessions: session.NewStore(cfg.SessionTTL),
		maps:     maps.NewGoogle(cfg.MapsAPIKey),
	}

	logger.Info("Planner backend configured", zap.String("base_url", cfg.BackendURL))
	if cfg.MapsAPIKey == "" {
		logger.Warn("MAPS_API_KEY not set, map panel will render a placeholder")
	}

	return s, nil
}

// HTTPServer creates and configures the HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Client returns the planner backend client.
func (s *Server) Client() *planner.Client {
	return s.client
}

// Sessions returns the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// Maps returns the map provider.
func (s *Server) Maps() maps.Provider {
	return s.maps
}

// Logger returns the logger instance.
func (s *Server) Logger() *zap.Logger {
	return s.logger
}

// Config returns the configuration.
func (s *Server) Config() *config.Config {
	return s.cfg
}
