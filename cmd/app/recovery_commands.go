package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/delegations/cmd/app/commands"
	"github.com/allisson/delegations/internal/app"
	"github.com/allisson/delegations/internal/config"
)

func getRecoveryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "purge-expired-recovery-data",
			Usage: "Permanently delete recovery data whose expiration instant has passed",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many records would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.RecoveryDataUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurgeExpiredRecoveryData(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					time.Now().UTC(),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
