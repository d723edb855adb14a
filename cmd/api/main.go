package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/trackscope/internal/app"
	"github.com/ewilliams-labs/trackscope/internal/config"
	"github.com/ewilliams-labs/trackscope/internal/logging"
)

func main() {
	configPath := flag.String("config", "trackscope.toml", "configuration file path")
	flag.Parse()

	// 1. Configuration (file, then environment overrides)
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	// 2. Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		stop()
		os.Exit(1)
	}
}
