package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/config"
	"example.com/cleanslate/backend/internal/metrics"
	"example.com/cleanslate/backend/internal/notifications"
	"example.com/cleanslate/backend/internal/server"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/storage"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	snapshots, err := storage.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	hub := notifications.NewHub()
	aiService := ai.NewService(ai.NewClient(cfg.AI), cfg.AI.MaxOutputTokens)
	store := state.NewStore(context.Background(), snapshots, aiService, hub, logger)

	appMetrics := metrics.New()
	store.Observe(appMetrics.ObserveAnalytics)
	store.ObserveGenerations(func(useCase ai.UseCase, failed bool) {
		appMetrics.ObserveGeneration(string(useCase), failed)
	})

	e := server.New(cfg, logger, server.Deps{
		Store:     store,
		Hub:       hub,
		AIService: aiService,
		Metrics:   appMetrics,
		Storage:   snapshots.Driver(),
	})
	httpServer := server.NewHTTPServer(cfg.Server, e)

	logger.Info("server starting",
		slog.String("addr", httpServer.Addr),
		slog.String("storage", snapshots.Driver()),
		slog.String("ai_provider", cfg.AI.Provider),
		slog.Bool("auth", cfg.Auth.Enabled()),
	)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
