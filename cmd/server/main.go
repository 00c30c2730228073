package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
	"github.com/JonMunkholm/anonhelper/internal/config"
	"github.com/JonMunkholm/anonhelper/internal/core"
	"github.com/JonMunkholm/anonhelper/internal/logging"
	"github.com/JonMunkholm/anonhelper/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Overload lets .env win over variables already set in the shell.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	cat, err := catalog.Load(catalog.Options{
		Path:            cfg.Catalog.Path,
		MinUniqueValues: cfg.Catalog.MinUniqueValues,
	})
	if err != nil {
		var cfgErr *catalog.ConfigurationError
		if errors.As(err, &cfgErr) {
			slog.Error("invalid pattern catalog", "field", cfgErr.Field, "error", err)
		} else {
			slog.Error("failed to load pattern catalog", "error", err)
		}
		os.Exit(1)
	}

	info := cat.Describe()
	slog.Info("catalog loaded",
		"path", cfg.Catalog.Path,
		"pii_patterns", len(info.PII),
		"min_unique_values", info.MinUniqueValues,
	)

	service := core.NewService(cat, cfg)
	server := web.NewServer(service, cfg)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdown(shutdownCtx, server, service)
	}()

	slog.Info("server starting",
		"addr", cfg.Server.Addr(),
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"api_key_required", cfg.Security.RequireAPIKey,
	)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}

type httpStopper interface {
	Shutdown(ctx context.Context) error
}

type runDrainer interface {
	LimiterStatus() core.RunLimiterStatus
	WaitForRuns(ctx context.Context) error
}

// shutdown stops accepting requests first, then waits for classification
// runs still holding a slot.
func shutdown(ctx context.Context, srv httpStopper, runs runDrainer) {
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	if status := runs.LimiterStatus(); status.Active > 0 {
		slog.Info("waiting for classification runs to finish", "active", status.Active)
		if err := runs.WaitForRuns(ctx); err != nil {
			slog.Warn("runs did not finish in time", "error", err)
		}
	}
}
