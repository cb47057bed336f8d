package main

import (
	"context"
	"strings"

	"protocol-catalog/internal/adapter/link"
	"protocol-catalog/internal/adapter/storage/filesystem"
	"protocol-catalog/internal/adapter/storage/memory"
	"protocol-catalog/internal/application"
	domainRepo "protocol-catalog/internal/domain/repository"
	domainService "protocol-catalog/internal/domain/service"

	"github.com/urfave/cli/v3"
)

// changedProtocolsEnv carries the newline separated ids of changed protocols.
const changedProtocolsEnv = "CHANGED_PROTOCOLS"

var validateCmd = &cli.Command{
	Name:      "validate",
	Aliases:   []string{"lint"},
	Usage:     "Validate the descriptors of changed protocols",
	ArgsUsage: "[protocol-id...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "protocols-dir",
			Aliases: []string{"p"},
			Usage:   "Root directory holding <id>/config.json",
		},
		&cli.StringFlag{
			Name:    "changed",
			Usage:   "Newline separated protocol ids to validate",
			Sources: cli.EnvVars(changedProtocolsEnv),
		},
		&cli.BoolFlag{
			Name:  "aggregate",
			Usage: "Report every violation instead of stopping at the first",
		},
		&cli.BoolFlag{
			Name:  "check-links",
			Usage: "Probe every integrationUrl over HTTP",
		},
	},
	Action: validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() // flush buffered entries before exit

	if cmd.IsSet("protocols-dir") {
		cfg.Protocols.Root = cmd.String("protocols-dir")
	}
	if cmd.IsSet("aggregate") {
		cfg.Validator.Aggregate = cmd.Bool("aggregate")
	}
	if cmd.IsSet("check-links") {
		cfg.Validator.CheckLinks = cmd.Bool("check-links")
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	var (
		linkChecker domainService.LinkChecker
		linkCache   domainRepo.LinkCacheRepository
	)
	if cfg.Validator.CheckLinks {
		linkChecker = link.NewChecker(cfg.Validator, log)
		linkCache = memory.NewLinkCacheRepository(cfg.Validator, log)
	}

	validator := application.NewDescriptorValidator(
		filesystem.NewProtocolRepository(cfg.Protocols, log),
		linkChecker,
		linkCache,
		cfg.Validator,
		log,
	)

	ids := append(parseProtocolList(cmd.String("changed")), cmd.Args().Slice()...)
	return validator.Validate(ctx, ids)
}

// parseProtocolList splits a newline separated id list. Lines are trimmed and
// blank lines dropped, so CRLF input and trailing newlines are accepted.
func parseProtocolList(raw string) []string {
	var ids []string
	for _, line := range strings.Split(raw, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
