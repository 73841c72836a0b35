package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/allisson/delegations/cmd/app/commands"
	"github.com/allisson/delegations/internal/app"
	"github.com/allisson/delegations/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API, the metrics server and the recovery data purge worker",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				gin.SetMode(cfg.GetGinMode())

				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				return commands.RunServer(ctx, container, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
	}
}
