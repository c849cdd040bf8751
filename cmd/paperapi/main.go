// Package main serves the read-only papers HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"PaperIndexer/internal/app"
	"PaperIndexer/internal/config"
	"PaperIndexer/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	addr := application.ListenAddr()
	logger.Info("papers api listening", "addr", addr, "table", cfg.Dynamo.Table)

	if err := application.APIServer().Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
