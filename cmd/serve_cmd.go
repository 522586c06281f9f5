package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/handlers"
	"portfolio-catalog/pkg/services"
)

// newServeCmd creates a new command for serving the preview site
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the preview web server",
		Long: `Start a web server that renders hub and gallery pages from the catalog,
serves the site's images and exposes /report.json and /feed.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			svc := services.InitService(cfg, logger)

			// Load once up front so a broken catalog is reported before listening
			if _, err := svc.Catalog(); err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serveWebsite(ctx, cfg, svc, logger)
		},
	}
}

// serveWebsite runs the web server until ctx is cancelled
func serveWebsite(ctx context.Context, cfg *config.Config, svc *services.Service, logger *slog.Logger) error {
	h := handlers.New(svc, cfg.ViewsDir, logger)
	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           h.Routes(cfg.SiteDir),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	cfg.PrintServerStartMessage()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return WrapExitError(ExitFailure, "server error", err)
	}
	logger.Info("server stopped")
	return nil
}
