// Package server boots the application and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdalam/furnidex/config"
	"github.com/kdalam/furnidex/internal/kernel"
	"github.com/kdalam/furnidex/pkg/cache"
	"github.com/kdalam/furnidex/pkg/database"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/storage"
	"github.com/kdalam/furnidex/pkg/ws"
)

// Boot loads configuration and connects the backing services.
// Shared between the HTTP server and the CLI commands.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// Sessions degrade without Redis; keep serving read-only pages.
		logger.Warn("server: redis unavailable", "error", err)
	}
	storage.Connect()
	return nil
}

// Start boots the application and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	go ws.Catalog.Run()

	httpKernel := kernel.NewHTTPKernel(database.DB)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}

// Kernel boots the app and returns the HTTP kernel without serving.
// Used by route:list.
func Kernel() (*kernel.HTTPKernel, error) {
	if err := Boot(); err != nil {
		return nil, err
	}
	return kernel.NewHTTPKernel(database.DB), nil
}
