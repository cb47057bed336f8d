package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"protocol-catalog/internal/config"
	"protocol-catalog/internal/logger"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "protocolctl",
		Version: Version,
		Usage:   "Merge and validate per-protocol catalog descriptors",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "Directory searched for protocolctl.yaml",
				Value: "configs",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override logger.level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			mergeCmd,
			validateCmd,
			versionCmd,
		},
	}
}

// setup loads the configuration and builds the logger for a command.
func setup(cmd *cli.Command) (*config.Config, *zap.Logger, error) {
	root := cmd.Root()

	cfg, err := config.Load(root.String("config-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if level := root.String("log-level"); level != "" {
		cfg.Logger.Level = level
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	log.Debug("Logger initialized", zap.Any("config", cfg.Logger))
	return cfg, log, nil
}
