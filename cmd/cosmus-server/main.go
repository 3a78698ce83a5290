// Package main provides the entry point for the cosmus API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cosmusapp/cosmus-go/internal/config"
	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/metrics"
	"github.com/cosmusapp/cosmus-go/internal/nasa"
	"github.com/cosmusapp/cosmus-go/internal/retry"
	"github.com/cosmusapp/cosmus-go/internal/server"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("cosmus-server starting",
		"version", version,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModel,
		"archive_url", cfg.ArchiveURL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	stats := metrics.NewCollector()

	model, err := llm.NewModel(ctx, cfg, stats)
	if err != nil {
		logger.Error("failed to init model", "error", err)
		os.Exit(1)
	}

	policy := retry.Policy{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
		Multiplier:   cfg.RetryMultiplier,
	}
	sessions := session.NewManager(model, policy, logger)

	archive := nasa.NewClient(cfg.ArchiveURL, logger, stats)
	engine := nasa.NewEngine(archive, logger)

	srv := server.New(cfg.ServerAddr, sessions, engine, stats, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
