package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"webcarbon/internal/config"
	"webcarbon/internal/logger"
	"webcarbon/internal/reports"
	"webcarbon/internal/server"
	"webcarbon/internal/storage"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart, its images and the tooltip API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port; defaults to PORT")

	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully
func runServer(ctx context.Context, cfg *config.Config) error {
	log := logger.GetGlobalLogger().WithComponent("main")

	generator, err := reports.NewGenerator(cfg.OutputDir, getVersion())
	if err != nil {
		return err
	}
	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.NewServer(cfg, generator, store)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Starting energy chart service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"variant":     cfg.ChartVariant,
		"version":     getVersion(),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
		return err
	}

	log.Info("Server stopped")
	return nil
}
