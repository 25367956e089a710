package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/config"
	"github.com/naka-gawa/github-dashboard/internal/server"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the dashboard over HTTP",
		Long: `Serves one shared dashboard session as a JSON API. The default repository
is loaded as soon as the server starts.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	serveCmd.Flags().String("addr", config.DefaultListenAddr, "Address to listen on")
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dashboard, cfg, logger, err := newDashboard(cmd)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.NewHandler(dashboard, logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go dashboard.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}
