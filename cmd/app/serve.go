package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/carlsonrocha-octa/softtek-backend/cmd"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/observability"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the order processing pipeline",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// initObservability is replaced in tests to observe the telemetry shutdown.
var initObservability = observability.Init

func serve(c *cobra.Command, _ []string) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := initObservability(ctx, serviceName, observability.Settings{
		LogLevel: configs.LogLevel,
		Exporter: configs.OtelExporter,
	})
	if err != nil {
		log.Fatalf("Error initializing observability: %v", err)
	}
	logger := instruments.Logger

	// release drains the application (when built) and flushes telemetry.
	release := func(app *cmd.CompositionRoot) error {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), configs.ShutdownTimeout)
		defer cancel()

		var appErr error
		if app != nil {
			appErr = app.Close(shutdownCtx)
		}
		return errors.Join(appErr, shutdownTelemetry(shutdownCtx))
	}

	storage, err := cmd.OpenStorage(ctx, configs)
	if err != nil {
		return errors.Join(fmt.Errorf("opening %s storage: %w", configs.StorageDriver, err), release(nil))
	}
	if err = storage.Migrate(ctx); err != nil {
		return errors.Join(err, storage.Close(), release(nil))
	}
	logger.InfoContext(ctx, "storage ready", "driver", storage.Driver())

	app := cmd.NewCompositionRoot(configs, storage, instruments)

	e, err := app.CreateRouter()
	if err != nil {
		return errors.Join(fmt.Errorf("building router: %w", err), release(app))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return errors.Join(err, release(app))
	}

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.InfoContext(ctx, "http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-serverErr:
		logger.Error("http server stopped", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), configs.ShutdownTimeout)
	defer cancel()

	httpErr := e.Shutdown(shutdownCtx)
	jobManager.StopAll()

	return errors.Join(runErr, httpErr, release(app))
}
