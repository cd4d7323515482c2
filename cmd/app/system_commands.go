package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credstash/cmd/app/commands"
	"github.com/allisson/credstash/internal/app"
	"github.com/allisson/credstash/internal/config"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "setup",
			Usage: "Create the credential table (DynamoDB) or run database migrations (SQL stores)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					if cfg.StoreDriver != config.StoreDynamoDB {
						return commands.RunMigrations(container.Logger(), cfg.StoreDriver, cfg.DBConnectionString)
					}

					repository, err := container.DynamoDBRepository()
					if err != nil {
						return err
					}
					return commands.RunSetupTable(ctx, repository, container.Logger(), cfg.Table)
				})
			},
		},
	}
}
