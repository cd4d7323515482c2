package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credstash/cmd/app/commands"
	"github.com/allisson/credstash/internal/app"
	"github.com/allisson/credstash/internal/config"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getCredentialCommands()...)
	cmds = append(cmds, getSystemCommands()...)
	return cmds
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "region",
			Aliases: []string{"r"},
			Usage:   "AWS region (overrides AWS_REGION)",
		},
		&cli.StringFlag{
			Name:    "table",
			Aliases: []string{"t"},
			Usage:   "Credential table name (overrides CREDSTASH_TABLE)",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "KMS master key id or alias (overrides KMS_MASTER_KEY_ID)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   commands.FormatText,
			Usage:   "Output format: 'text' or 'json'",
		},
	}
}

// loadConfig reads the environment and applies any global flags given on the command line.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Load()
	if cmd.IsSet("region") {
		cfg.AWSRegion = cmd.String("region")
	}
	if cmd.IsSet("table") {
		cfg.Table = cmd.String("table")
	}
	if cmd.IsSet("key") {
		cfg.KMSMasterKeyID = cmd.String("key")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withContainer builds a container from the command's configuration, runs fn and shuts
// the container down afterwards.
func withContainer(
	ctx context.Context,
	cmd *cli.Command,
	fn func(cfg *config.Config, container *app.Container) error,
) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer commands.CloseContainer(container, container.Logger())

	return fn(cfg, container)
}
