package main

import (
	"context"
	"fmt"

	"protocol-catalog/internal/adapter/hash"
	"protocol-catalog/internal/adapter/storage/filesystem"
	"protocol-catalog/internal/application"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var mergeCmd = &cli.Command{
	Name:  "merge",
	Usage: "Combine every protocol descriptor into one catalog file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "protocols-dir",
			Aliases: []string{"p"},
			Usage:   "Root directory holding <id>/config.json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Catalog file to write (.yaml/.yml for YAML)",
		},
		&cli.StringFlag{
			Name:  "hash",
			Usage: "Icon hash algorithm (md5 or sha256)",
		},
	},
	Action: mergeAction,
}

func mergeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() // flush buffered entries before exit

	if cmd.IsSet("protocols-dir") {
		cfg.Protocols.Root = cmd.String("protocols-dir")
	}
	if cmd.IsSet("output") {
		cfg.Merger.Output = cmd.String("output")
	}
	if cmd.IsSet("hash") {
		cfg.Merger.HashAlgorithm = cmd.String("hash")
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	hasher, err := hash.NewHasher(cfg.Merger.GetHashAlgorithm())
	if err != nil {
		return err
	}

	merger := application.NewCatalogMerger(
		filesystem.NewProtocolRepository(cfg.Protocols, log),
		filesystem.NewCatalogRepository(cfg.Merger.Output, log),
		hasher,
		log,
	)

	if _, err = merger.Merge(ctx); err != nil {
		log.Error("Failed to merge protocol descriptors", zap.Error(err))
		return fmt.Errorf("merge failed: %w", err)
	}
	return nil
}
