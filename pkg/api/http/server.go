package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/aescanero/shortcast/pkg/ports"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RunTrigger starts runs through the single-flight gate
type RunTrigger interface {
	Trigger(ctx context.Context, source trigger.Source) (*domain.RunRecord, error)
	GetStatus() trigger.Status
}

// ConfigValidator validates a merged brand config before it is saved
type ConfigValidator interface {
	Validate(cfg *domain.BrandConfig) error
}

// Server represents the HTTP API server
type Server struct {
	router    *gin.Engine
	server    *http.Server
	trigger   RunTrigger
	configs   ports.ConfigStore
	runs      ports.RunStore
	validator ConfigValidator
	logger    *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port      int
	Trigger   RunTrigger
	Configs   ports.ConfigStore
	Runs      ports.RunStore
	Validator ConfigValidator
	Logger    *zap.Logger
	// MetricsHandler serves /metrics. Defaults to the global Prometheus registry.
	MetricsHandler http.Handler
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(corsMiddleware())

	s := &Server{
		router:    router,
		trigger:   cfg.Trigger,
		configs:   cfg.Configs,
		runs:      cfg.Runs,
		validator: cfg.Validator,
		logger:    cfg.Logger,
	}

	metrics := cfg.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	s.setupRoutes(metrics)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(metrics http.Handler) {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(metrics))

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Run endpoints
		v1.POST("/runs", s.handleTriggerRun)
		v1.GET("/runs", s.handleListRuns)
		v1.GET("/runs/latest", s.handleLatestRun)
		v1.GET("/runs/status", s.handleRunStatus)

		// Brand config endpoints
		v1.GET("/config", s.handleGetConfig)
		v1.PUT("/config", s.handleSaveConfig)
		v1.POST("/config", s.handleSaveConfig)
	}
}

// SetupWebSocket adds WebSocket handler to the server
func (s *Server) SetupWebSocket(handler interface{}) {
	if wsHandler, ok := handler.(interface {
		HandleRunStream(*gin.Context)
	}); ok {
		s.router.GET("/api/v1/runs/:id/ws", wsHandler.HandleRunStream)
	}
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
