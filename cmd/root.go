package cmd

import (
	"context"
	"fmt"
	"os"

	"transit-manager/core/bootstrap"
	"transit-manager/core/config"
	"transit-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "transit-manager",
	Short: "Transit Manager Service",
	Long: `Transit Manager looks up bus stops and upcoming buses across several sources.
Offline stores (cache, key-value, SQL, object storage, MongoDB) are queried before
online sources (REST API, GTFS Realtime), and stops found online can be saved back.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configPath is the directory holding the optional .env file.
var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// environment is what every command needs: configuration, a logger and the backends.
type environment struct {
	cfg      *config.Config
	log      *zap.Logger
	backends *bootstrap.Backends
}

func (e *environment) Close() {
	if err := e.backends.Close(); err != nil {
		e.log.Warn("Failed to close backends", zap.Error(err))
	}
	_ = e.log.Sync()
}

// setup loads the configuration and opens every enabled backend.
func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	backends, err := bootstrap.Build(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver: %w", err)
	}
	return &environment{cfg: cfg, log: l, backends: backends}, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding the .env file")
}
