package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print the version information",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		fmt.Printf("protocolctl version %s\n", cmd.Root().Version)
		return nil
	},
}
