package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/config"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/logging"
	"github.com/nerrad567/smarthome-sync/internal/journal"
	"github.com/nerrad567/smarthome-sync/internal/relay"
	"github.com/nerrad567/smarthome-sync/internal/scheduler"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	WS        config.WebSocketConfig
	Scheduler config.SchedulerConfig
	Logger    *logging.Logger
	Store     *home.Store

	// Hub is created by the server when nil.
	Hub *Hub

	// Relay is built over Hub when nil.
	Relay *relay.Relay

	// Forwarder is built from Scheduler when nil.
	Forwarder *scheduler.Forwarder

	// Journal serves GET /api/events; the endpoint answers 503 when nil.
	Journal journal.Repository

	// Registry serves GET /metrics. A private registry is created when nil.
	Registry *prometheus.Registry

	Version string
}

// Server is the HTTP API server for the smart home sync core.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg          config.APIConfig
	wsCfg        config.WebSocketConfig
	schedCfg     config.SchedulerConfig
	logger       *logging.Logger
	store        *home.Store
	hub          *Hub
	externalHub  bool
	relay        *relay.Relay
	forwarder    *scheduler.Forwarder
	journal      journal.Repository
	registry     *prometheus.Registry
	metrics      *metrics
	links        home.LinkBuilder
	version      string
	server       *http.Server
	cancel       context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("home store is required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		schedCfg:  deps.Scheduler,
		logger:    deps.Logger,
		store:     deps.Store,
		hub:       deps.Hub,
		relay:     deps.Relay,
		forwarder: deps.Forwarder,
		journal:   deps.Journal,
		registry:  deps.Registry,
		links:     home.NewLinkBuilder(deps.Config.PublicURL),
		version:   deps.Version,
	}

	if s.hub != nil {
		s.externalHub = true
	} else {
		s.hub = NewHub(deps.WS, deps.Logger, deps.Store, nil)
	}
	if s.relay == nil {
		s.relay = relay.New(deps.Store, s.hub.From(journal.SourceHTTP))
		s.relay.SetLogger(deps.Logger)
	}
	if s.forwarder == nil {
		s.forwarder = scheduler.NewForwarder(deps.Scheduler)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry, s.hub)

	return s, nil
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub unless one was injected, builds the router
// and launches the HTTP listener in a background goroutine. The server can
// be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if !s.externalHub {
		go s.hub.Run(srvCtx)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
