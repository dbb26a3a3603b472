// Package server exposes the streaming response layer over HTTP: simulation
// endpoints that drive the SSE and NDJSON builders with a lazy, latency-
// simulating producer, plus a health check.
package server

import (
	"net"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/spool/pkg/config"
)

// Config holds the server settings.
type Config struct {
	ListenAddr string
	Demo       config.DemoConfig
}

// Server is the HTTP server hosting the streaming endpoints.
type Server struct {
	config Config
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new Server with its routes registered.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Server{
		config: cfg,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", adaptor.HTTPHandlerFunc(handlePing))
	app.Get("/v1/events", s.handleEvents)
	app.Get("/v1/chunks", s.handleChunks)

	return s
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// RunWithListener starts the server using the provided listener.
func (s *Server) RunWithListener(listener net.Listener) error {
	s.logger.Info("starting server",
		zap.String("listen", listener.Addr().String()),
	)
	return s.app.Listener(listener)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Test forwards to the underlying fiber app's test harness.
func (s *Server) Test(req *http.Request, timeoutMS ...int) (*http.Response, error) {
	return s.app.Test(req, timeoutMS...)
}

// handlePing returns a simple health check response. It is a plain net/http
// handler mounted through the fiber adaptor.
func handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`"pong"`))
}
