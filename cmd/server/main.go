// Command server runs the event landing page HTTP server.
//
// It loads configuration from the environment (optionally via .env), wires
// the CSV data service and starts warming the sources in the background so
// the first page view does not pay the full fetch cost.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hcd-tokyo/lp/internal/config"
	"github.com/hcd-tokyo/lp/internal/data"
	"github.com/hcd-tokyo/lp/internal/fetch"
	"github.com/hcd-tokyo/lp/internal/logging"
	"github.com/hcd-tokyo/lp/internal/web"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting", "config", cfg.String())

	client := fetch.NewClient(cfg.Fetch.Timeout)
	svc := data.NewService(client, data.Sources{
		TextCatalog: cfg.Sources.URL(cfg.Sources.TextCatalog),
		Speakers:    cfg.Sources.URL(cfg.Sources.Speakers),
		Schedule:    cfg.Sources.URL(cfg.Sources.Schedule),
		Assets:      cfg.Sources.URL(cfg.Sources.Assets),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go svc.Warm(ctx)

	server := web.NewServer(svc, cfg)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("stopped")
}
