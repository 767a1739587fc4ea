package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/shortcast/internal/application/orchestrator"
	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/pkg/api/grpc"
	"github.com/aescanero/shortcast/pkg/api/http"
	"github.com/aescanero/shortcast/pkg/api/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP, WebSocket and gRPC API and the run scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.wirePipeline(); err != nil {
		return err
	}

	logger := a.logger
	cfg := a.cfg

	logger.Info("starting shortcast",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:      cfg.HTTPPort,
		Trigger:   a.gate,
		Configs:   a.store,
		Runs:      a.store,
		Validator: orchestrator.NewValidator(),
		Logger:    logger,
	})

	// Add WebSocket handler to HTTP server
	wsHandler := websocket.NewHandler(a.bus, logger)
	httpServer.SetupWebSocket(wsHandler)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Port:   cfg.GRPCPort,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}

	scheduler := trigger.NewScheduler(a.gate, cfg.Schedule.Interval, logger)

	// Start servers
	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	scheduler.Start()

	logger.Info("shortcast started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("store", cfg.Store.Backend),
		zap.String("events", cfg.Store.EventBackend),
		zap.Duration("schedule_interval", cfg.Schedule.Interval))

	// Wait for interrupt signal or a server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case serveErr = <-errCh:
		logger.Error("server failed", zap.Error(serveErr))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := scheduler.Shutdown(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown error", zap.Error(err))
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	logger.Info("shortcast shut down complete")
	return serveErr
}
