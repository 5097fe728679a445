package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sngm3741/business-intake/api/internal/config"
	"github.com/sngm3741/business-intake/api/internal/server"
	"github.com/sngm3741/business-intake/api/internal/shared/logging"
)

func main() {
	// A local .env is optional; variables already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	slog.SetDefault(logger)
	logger.Info("config loaded",
		slog.String("addr", cfg.Addr),
		slog.Any("allowed_origins", cfg.AllowedOrigins),
		slog.String("log_level", cfg.Logging.Level))

	if err := server.New(cfg, logger).Run(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
