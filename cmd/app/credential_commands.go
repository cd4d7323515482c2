package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credstash/cmd/app/commands"
	"github.com/allisson/credstash/internal/app"
	"github.com/allisson/credstash/internal/config"
)

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "get",
			Usage:     "Get the latest (or a specific) version of a credential",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Credential version (19-digit, zero-padded)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 1 {
					return fmt.Errorf("get requires exactly one credential name")
				}
				return withContainer(ctx, cmd, func(_ *config.Config, container *app.Container) error {
					useCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunGet(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().First(),
						cmd.String("version"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:      "getall",
			Usage:     "Get the latest version of several credentials at once",
			ArgsUsage: "NAME [NAME...]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(_ *config.Config, container *app.Container) error {
					useCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunGetAll(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().Slice(),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:      "put",
			Usage:     "Store a new version of a credential ('-' reads the value from stdin)",
			ArgsUsage: "NAME VALUE|-",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 2 {
					return fmt.Errorf("put requires a credential name and a value")
				}
				return withContainer(ctx, cmd, func(_ *config.Config, container *app.Container) error {
					useCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunPut(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Args().Get(0),
						cmd.Args().Get(1),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list",
			Usage: "List stored credential names and versions",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(_ *config.Config, container *app.Container) error {
					useCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunList(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
