// Package main provides the entry point for the credstash CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// Build information, set via ldflags.
var (
	version   = "dev"
	buildDate = "unknown"
	commitSHA = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:     "credstash",
		Usage:    "Store and retrieve envelope-encrypted, versioned credentials",
		Version:  version + " (" + commitSHA + ", built " + buildDate + ")",
		Flags:    globalFlags(),
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
