package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/delegations/cmd/app/commands"
)

func getDelegationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "merge-security-metadata",
			Usage: "Merge two security metadata JSON documents offline and print the result",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "this",
					Required: true,
					Usage:    "Path of the metadata that wins key elections",
				},
				&cli.StringFlag{
					Name:     "other",
					Required: true,
					Usage:    "Path of the metadata merged into --this",
				},
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Value:   commands.MergeModeVersions,
					Usage:   "Merge mode: 'versions' (two revisions of one entity) or 'duplicate' (duplicate entity into --this)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
				return commands.RunMergeSecurityMetadata(
					logger,
					commands.DefaultIO().Writer,
					cmd.String("this"),
					cmd.String("other"),
					cmd.String("mode"),
				)
			},
		},
	}
}
