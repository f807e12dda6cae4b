package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sandwatch/sandwatch/internal/auth"
	"github.com/sandwatch/sandwatch/internal/history"
	"github.com/sandwatch/sandwatch/internal/metrics"
	"github.com/sandwatch/sandwatch/internal/storage"
	"github.com/sandwatch/sandwatch/internal/supervise"
)

// Server holds the API server dependencies.
type Server struct {
	echo     *echo.Echo
	detector *supervise.MountDetector
	registry *supervise.Registry
	locator  *supervise.Locator
	prober   *supervise.Prober

	bucketProbe *storage.BucketProbe // nil when no bucket is configured
	history     *history.Store       // nil when the data dir is unavailable

	gatewayVersionCmd string
	gatewayConfigCmd  string
}

// ServerOpts carries the wired components for the HTTP surface.
type ServerOpts struct {
	Detector *supervise.MountDetector
	Registry *supervise.Registry
	Locator  *supervise.Locator
	Prober   *supervise.Prober

	BucketProbe *storage.BucketProbe
	History     *history.Store

	GatewayVersionCmd string
	GatewayConfigCmd  string
}

// NewServer creates a new API server with all routes configured.
func NewServer(apiKey string, opts ServerOpts) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:              e,
		detector:          opts.Detector,
		registry:          opts.Registry,
		locator:           opts.Locator,
		prober:            opts.Prober,
		bucketProbe:       opts.BucketProbe,
		history:           opts.History,
		gatewayVersionCmd: opts.GatewayVersionCmd,
		gatewayConfigCmd:  opts.GatewayConfigCmd,
	}

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(metrics.EchoMiddleware())

	// Health check and metrics (no auth)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// API routes (with auth)
	api := e.Group("")
	api.Use(auth.APIKeyMiddleware(apiKey))

	// Storage
	api.GET("/status/mount", s.mountStatus)
	api.GET("/status/bucket", s.bucketStatus)
	api.GET("/status/checks", s.recentChecks)

	// Process table
	api.GET("/processes", s.listProcesses)
	api.GET("/processes/gateway", s.gatewayProcess)
	api.GET("/processes/gateway/logs", s.gatewayLogs)

	// Gateway probes
	api.GET("/gateway/version", s.gatewayVersion)
	api.GET("/gateway/config", s.gatewayConfig)

	return s
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	return s.echo.Close()
}
