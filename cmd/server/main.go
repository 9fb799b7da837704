// YaadMind - Bilingual mental-health risk triage for Jamaica
package main

import (
	"context"
	"os"

	"github.com/nmorris876/yaadmind/internal/config"
	"github.com/nmorris876/yaadmind/internal/logging"
	"github.com/nmorris876/yaadmind/internal/server"
	"github.com/nmorris876/yaadmind/internal/traces"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Create logger
	logger := logging.New("info", "text")

	logger.Info("starting yaadmind",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"model_server", cfg.ModelServerURL != "",
		"database", cfg.DatabaseURL != "",
	)

	ctx := context.Background()

	// Tracing (no-op when OTEL_EXPORTER_OTLP_ENDPOINT is unset)
	if cfg.OTELEndpoint != "" {
		shutdown, err := traces.Init(ctx, cfg.OTELEndpoint, logger)
		if err != nil {
			logger.Error("failed to init tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("trace shutdown error", "error", err)
			}
		}()
	}

	// Create and run server
	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
