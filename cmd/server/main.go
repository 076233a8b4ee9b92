package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/movieclubhq/backend/internal/api"
	"github.com/movieclubhq/backend/internal/cache"
	"github.com/movieclubhq/backend/internal/config"
	"github.com/movieclubhq/backend/internal/metrics"
	"github.com/movieclubhq/backend/internal/storage/sqlite"
	"github.com/movieclubhq/backend/internal/timeline"
	"github.com/movieclubhq/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DbPath)

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	svc := timeline.NewService(store, cache.New(), collector)

	// Build the schedule once at startup. A failure here is degraded
	// service, not a fatal condition: the cache rebuilds on the next
	// settings change or explicit refresh.
	if err := svc.Refresh(context.Background()); err != nil {
		slog.Warn("Initial rotation cache build failed", "error", err)
	}

	server := api.NewServer(store, svc, slog.Default())

	// Wrap with h2c to serve HTTP/2 without TLS.
	handler := h2c.NewHandler(server.Handler(), &http2.Server{})

	addr := cfg.ListenAddress()
	slog.Info("API server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
